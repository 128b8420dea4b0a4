/*
Package wasmbridge loads a WebAssembly module, links it against a single host
logging function and calls into it.

A guest may import exactly one host function:

	env.console_log_ex(location i32, size i32)

which logs the UTF-8 text stored in [location, location+size) of the guest's
exported "memory". Calls outside the current memory size fail the guest call
with ErrOutOfBounds and log nothing.

A Host owns the loaded instance:

	host, err := wasmbridge.LoadFromDisk(ctx, "wasmdata/demo.wasm")
	if err != nil {
		return err
	}
	defer host.Close(ctx)

	sum, err := host.RunDemo(ctx) // add(2, 2), logged as "add result" result=4

Loading fetches the bytes through a loader.Loader (disk, HTTP, bytes or an
io.Reader), compiles and validates them against the import table and
instantiates the module. A failed fetch is an ErrLoadFailed, a module that
cannot be compiled, linked or started is an ErrCompileFailed. Either way the
Host keeps whatever instance it held before.
*/
package wasmbridge
