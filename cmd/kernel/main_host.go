//go:build !aarch64

package main

// main is a stub on host builds: KernelMain's logic is exercised directly
// by this package's tests instead, since there is no real hardware to
// boot on a development machine.
func main() {}
