// Package platform centralizes the per-board constants the teacher kernel
// hardcodes behind build tags (PERIPHERAL_BASE, the GIC base, the mailbox
// base): a Config value selected once at boot by cmd/kernel, never probed
// at runtime.
package platform

// Config describes the physical memory layout and timing constants a
// specific board exposes to the core.
type Config struct {
	// Name identifies the board, for diagnostics only.
	Name string

	// RAMStart/RAMEnd bound the physical range the frame allocator owns,
	// above the kernel image and below the top of RAM.
	RAMStart uintptr
	RAMEnd   uintptr

	// IOBase/IOEnd bound the memory-mapped peripheral range, identity
	// mapped as device memory by the kernel page table.
	IOBase uintptr
	IOEnd  uintptr

	// PeripheralBase is the base address GIC/UART/timer register offsets
	// are computed from.
	PeripheralBase uintptr

	// TickMicros is the scheduler quantum armed on Timer1 at every
	// preemption.
	TickMicros uint64

	// UserImageBase is USER_IMG_BASE: the lowest virtual address a
	// process's flat binary may be loaded at.
	UserImageBase uintptr

	// KernelLoadAddr is the flat physical address the bootloader branches
	// to after a successful transfer.
	KernelLoadAddr uintptr

	// BootloaderLoadAddr is where stage-1 firmware loads the bootloader
	// itself.
	BootloaderLoadAddr uintptr
}

// PageSize is the 64 KiB translation granule every component in this kernel
// assumes; it is not board-specific.
const PageSize = 64 * 1024

// The kernel page table's L2 has only two entries (internal/vm supports one
// managed 1 GiB virtual regime), and the identity map runs from physical 0
// through RAMEnd, so every board's RAMEnd and IOEnd must stay within the
// first GiB.

// QEMUVirt returns the configuration for the `qemu-system-aarch64 -M virt`
// target: generous RAM, no VideoCore framebuffer.
func QEMUVirt() Config {
	return Config{
		Name:               "qemu-virt",
		RAMStart:           0x00000000,
		RAMEnd:             0x3F000000,
		IOBase:             0x3F000000,
		IOEnd:              0x40000000,
		PeripheralBase:     0x3F000000,
		TickMicros:         10_000,
		UserImageBase:      0xFFFFFFFFC0000000,
		KernelLoadAddr:     0x80000,
		BootloaderLoadAddr: 0x4000000,
	}
}

// RaspberryPi3 returns the configuration for real Raspberry Pi 3 hardware.
func RaspberryPi3() Config {
	return Config{
		Name:               "raspi3",
		RAMStart:           0x00000000,
		RAMEnd:             0x3F000000,
		IOBase:             0x3F000000,
		IOEnd:              0x40000000,
		PeripheralBase:     0x3F000000,
		TickMicros:         10_000,
		UserImageBase:      0xFFFFFFFFC0000000,
		KernelLoadAddr:     0x80000,
		BootloaderLoadAddr: 0x4000000,
	}
}
