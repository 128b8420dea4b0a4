package helpers

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// DefaultWasmName is the file name of the demonstration module.
const DefaultWasmName = "demo.wasm"

// wasmSearchDirs are checked in order, relative to the working directory.
var wasmSearchDirs = []string{
	".",
	"wasmdata",
	"../wasmdata",
	"../../wasmdata",
}

// FindWasmFile searches for a WASM file named name in the working directory and
// the wasmdata directory of this repository, from the root or up to two levels
// below it.
//
// Returns the absolute path of the first match, or an error listing every
// path that was checked.
func FindWasmFile(logger *slog.Logger, name string) (string, error) {
	if name == "" {
		name = DefaultWasmName
	}
	if logger != nil {
		logger.Debug("Searching for WASM file", "name", name)
	}

	checkedPaths := make([]string, 0, len(wasmSearchDirs))
	for _, dir := range wasmSearchDirs {
		path := filepath.Join(dir, name)
		absPath, err := filepath.Abs(path)
		if err != nil {
			absPath = path
		}

		info, err := os.Stat(absPath)
		if err == nil && !info.IsDir() {
			if logger != nil {
				logger.Debug("Found WASM file", "path", absPath)
			}
			return absPath, nil
		}
		checkedPaths = append(checkedPaths, absPath)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "WASM file %q not found in any of the expected locations:\n", name)
	for _, path := range checkedPaths {
		sb.WriteString("   - " + path + "\n")
	}
	return "", fmt.Errorf("%s", sb.String())
}
