package main

import (
	"mazarin/internal/fs/memfs"
)

// fibBin is a placeholder flat binary for demoBinaryPath. A real build
// links in the compiled fib/fib.s style demo program this kernel's
// four-process smoke test runs; the user-space toolchain that assembles it
// is out of scope here; these bytes exist only so proc.Load has something
// to map pages for and the first instruction at the user image base is
// well-defined
// (all-zero pages decode to a string of AArch64 `udf #0` traps, which is
// enough to exercise the loader and scheduler without a real program).
var fibBin = make([]byte, 256)

// bootFS builds the in-memory filesystem KernelMain loads demo processes
// and shell files from.
func bootFS() *memfs.FS {
	return memfs.New(map[string][]byte{
		demoBinaryPath: fibBin,
		"/motd.txt":    []byte("welcome to mazarin\n"),
	})
}
