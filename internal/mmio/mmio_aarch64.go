//go:build aarch64

package mmio

import _ "unsafe" // for go:linkname

// Read32 and Write32 are implemented in assembly (src/asm/mmio.s, not part
// of this port); see the teacher's uart_qemu.go/gic_qemu.go for the
// load/store-with-barrier sequence they wrap.

//go:linkname Read32 mmioRead32
//go:nosplit
func Read32(addr uintptr) uint32

//go:linkname Write32 mmioWrite32
//go:nosplit
func Write32(addr uintptr, value uint32)
