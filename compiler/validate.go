package compiler

import (
	"fmt"
	"slices"

	"github.com/robbyt/go-wasmbridge/bridge"
	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"github.com/tetratelabs/wazero/imports/wasi_snapshot_preview1"
)

// validate checks a compiled module against the import table and the export
// contract before anything is instantiated.
func (c *Compiler) validate(compiled wazero.CompiledModule) error {
	if err := validateImports(compiled, c.options.EnableWASI); err != nil {
		return err
	}
	return validateExports(compiled, c.options.RequiredExports)
}

func validateImports(compiled wazero.CompiledModule, wasi bool) error {
	if mems := compiled.ImportedMemories(); len(mems) > 0 {
		module, name, _ := mems[0].Import()
		return fmt.Errorf("%w: %w: memory import %s.%s is not provided",
			ErrCompileFailed, ErrImportMismatch, module, name)
	}

	for _, def := range compiled.ImportedFunctions() {
		module, name, _ := def.Import()
		if wasi && module == wasi_snapshot_preview1.ModuleName {
			continue
		}

		sig, ok := bridge.LookupImport(module, name)
		if !ok {
			return fmt.Errorf("%w: %w: function import %s.%s is not provided",
				ErrCompileFailed, ErrImportMismatch, module, name)
		}
		if !sig.Matches(def.ParamTypes(), def.ResultTypes()) {
			return fmt.Errorf("%w: %w: %s.%s imported as %s, provided as %s",
				ErrCompileFailed, ErrImportMismatch, module, name,
				bridge.FormatSignature(def.ParamTypes(), def.ResultTypes()),
				bridge.FormatSignature(sig.Params, sig.Results))
		}
	}
	return nil
}

func validateExports(compiled wazero.CompiledModule, required []string) error {
	if importsLogger(compiled) {
		if _, ok := compiled.ExportedMemories()[bridge.MemoryExport]; !ok {
			return fmt.Errorf("%w: %w: module imports %s.%s but exports no memory named %q",
				ErrCompileFailed, ErrMissingExport,
				bridge.Namespace, bridge.ConsoleLogEx, bridge.MemoryExport)
		}
	}

	exported := compiled.ExportedFunctions()
	for _, name := range required {
		if _, ok := exported[name]; !ok {
			return fmt.Errorf("%w: %w: function %q not exported",
				ErrCompileFailed, ErrMissingExport, name)
		}
	}
	return nil
}

func importsLogger(compiled wazero.CompiledModule) bool {
	return slices.ContainsFunc(compiled.ImportedFunctions(), func(def api.FunctionDefinition) bool {
		module, name, _ := def.Import()
		return module == bridge.Namespace && name == bridge.ConsoleLogEx
	})
}
