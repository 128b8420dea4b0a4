package bridge

import (
	"fmt"
	"slices"
	"strings"

	"github.com/tetratelabs/wazero/api"
)

const (
	// Namespace is the import module name the host functions are provided under.
	Namespace = "env"

	// ConsoleLogEx is the name of the logging host function.
	ConsoleLogEx = "console_log_ex"

	// MemoryExport is the name of the guest memory export the bridge reads from.
	MemoryExport = "memory"
)

// FuncSignature describes one host function of the import table.
type FuncSignature struct {
	Module  string
	Name    string
	Params  []api.ValueType
	Results []api.ValueType
}

func (s FuncSignature) String() string {
	return fmt.Sprintf("%s.%s%s", s.Module, s.Name, FormatSignature(s.Params, s.Results))
}

// Matches reports whether params and results are exactly the signature's types.
func (s FuncSignature) Matches(params, results []api.ValueType) bool {
	return slices.Equal(s.Params, params) && slices.Equal(s.Results, results)
}

var consoleLogExSignature = FuncSignature{
	Module:  Namespace,
	Name:    ConsoleLogEx,
	Params:  []api.ValueType{api.ValueTypeI32, api.ValueTypeI32},
	Results: nil,
}

// ImportTable returns the host functions a guest module may import. It always
// contains exactly one entry, env.console_log_ex(i32, i32).
func ImportTable() []FuncSignature {
	sig := consoleLogExSignature
	sig.Params = slices.Clone(sig.Params)
	return []FuncSignature{sig}
}

// LookupImport finds the import table entry for module.name.
func LookupImport(module, name string) (FuncSignature, bool) {
	for _, sig := range ImportTable() {
		if sig.Module == module && sig.Name == name {
			return sig, true
		}
	}
	return FuncSignature{}, false
}

// FormatSignature renders a function type, e.g. "(i32, i32) -> ()".
func FormatSignature(params, results []api.ValueType) string {
	names := func(types []api.ValueType) string {
		parts := make([]string, len(types))
		for i, t := range types {
			parts[i] = api.ValueTypeName(t)
		}
		return "(" + strings.Join(parts, ", ") + ")"
	}
	return names(params) + " -> " + names(results)
}
