package wasmdata

import _ "embed"

//go:generate wat2wasm src/demo.wat -o demo.wasm
//go:generate wat2wasm src/startlog.wat -o startlog.wasm
//go:generate wat2wasm src/badsig.wat -o badsig.wasm
//go:generate wat2wasm src/unknownimport.wat -o unknownimport.wasm
//go:generate wat2wasm src/noadd.wat -o noadd.wasm
//go:generate wat2wasm src/nomemory.wat -o nomemory.wasm
//go:generate wat2wasm src/wideadd.wat -o wideadd.wasm

// DemoModule is the demonstration guest, built from src/demo.wat. It imports
// env.console_log_ex, exports one page of memory holding "Hello" at offset 0, and
// the functions listed in the Entrypoint constants.
//
//go:embed demo.wasm
var DemoModule []byte

// StartLogModule is DemoModule with hello as its start function, so it logs
// "Hello" while being instantiated.
//
//go:embed startlog.wasm
var StartLogModule []byte

// BadSignatureModule imports env.console_log_ex as (i32) -> ().
//
//go:embed badsig.wasm
var BadSignatureModule []byte

// UnknownImportModule imports env.console_log, which the host does not provide.
//
//go:embed unknownimport.wasm
var UnknownImportModule []byte

// NoAddModule exports memory and hello but no add function.
//
//go:embed noadd.wasm
var NoAddModule []byte

// NoMemoryModule imports env.console_log_ex but exports no memory.
//
//go:embed nomemory.wasm
var NoMemoryModule []byte

// WideAddModule exports add as (i64, i64) -> i64 and imports nothing.
//
//go:embed wideadd.wasm
var WideAddModule []byte

// Entrypoint constants for DemoModule.
const (
	// EntrypointAdd returns a + b. (i32, i32) -> i32
	EntrypointAdd = "add"

	// EntrypointHello logs the 5 bytes at offset 0. () -> ()
	EntrypointHello = "hello"

	// EntrypointLog logs size bytes at ptr. (ptr i32, size i32) -> ()
	EntrypointLog = "log"

	// EntrypointGrow grows memory by delta pages and returns the previous size in
	// pages, or -1. (delta i32) -> i32
	EntrypointGrow = "grow"
)

const (
	// PageSize is the size of a wasm memory page in bytes.
	PageSize = 65536

	// HelloText is the content of the DemoModule data segment at offset 0.
	HelloText = "Hello"
)
