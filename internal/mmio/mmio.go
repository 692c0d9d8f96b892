// Package mmio is the one place this kernel touches memory-mapped device
// registers directly, mirroring the teacher's shared asm package
// (asm.MmioRead/asm.MmioWrite) rather than letting every driver declare its
// own raw pointer casts: a load/store through here is guaranteed
// non-cacheable and won't be reordered or elided by the compiler, which an
// ordinary *uint32 dereference is not guaranteed to honor. The actual
// accessors live in mmio_aarch64.go; this file only carries the package
// doc since there is nothing host-portable to put here.
package mmio
