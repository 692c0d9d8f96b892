//go:build aarch64

package main

import (
	_ "unsafe" // for go:linkname

	"mazarin/internal/console"
	"mazarin/internal/intc"
	"mazarin/internal/platform"
	"mazarin/internal/systimer"
	"mazarin/internal/trap"
)

// Peripheral offsets from platform.Config.PeripheralBase, per
// lib/pi/src/{uart,interrupt}.rs's base address arithmetic.
const (
	uartOffset = 0x201000
	gicOffset  = 0xB200
)

// wfi parks the core in low-power wait until the next interrupt;
// enterUser restores tf into live register state and eret's to EL0. Both
// are implemented in assembly (src/asm/entry.s, not part of this port).

//go:linkname wfi wfi
//go:nosplit
func wfi()

//go:linkname enterUser enterUser
func enterUser(tf *trap.TrapFrame)

// newHardware constructs the Hardware bundle real silicon uses for cfg.
func newHardware(cfg platform.Config) Hardware {
	return Hardware{
		Config:  cfg,
		Console: console.NewHardware(cfg.PeripheralBase + uartOffset),
		Timer:   systimer.NewHardware(),
		Intc:    intc.NewHardware(cfg.PeripheralBase + gicOffset),
		WFI:     wfi,
		Enter:   enterUser,
	}
}
