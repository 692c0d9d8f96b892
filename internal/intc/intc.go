// Package intc is the BCM2835-style interrupt controller: enable one of
// eight wired lines, and poll which have a pending interrupt. Grounded on
// lib/pi/src/interrupt.rs's Controller and the teacher's gic_qemu.go
// register layout.
package intc

import "mazarin/internal/trap"

// lineNumber maps a trap.InterruptLine to its BCM2835 IRQ number, per
// interrupt.rs's enum discriminants.
var lineNumber = map[trap.InterruptLine]uint{
	trap.Timer1: 1,
	trap.Timer3: 3,
	trap.USB:    9,
	trap.GPIO0:  49,
	trap.GPIO1:  50,
	trap.GPIO2:  51,
	trap.GPIO3:  52,
	trap.UART:   57,
}

// Controller is the register-level operations this package needs: read the
// pending bitmap, and set a bit in the enable bitmap. Real hardware has two
// 32-bit banks (IRQs 0-31, 32-63); Pending/Enable take the bank index.
type Controller struct {
	readPending func(bank int) uint32
	enable      func(bank int, bit uint)
}

// New constructs a Controller from its two register-level hooks.
func New(readPending func(bank int) uint32, enable func(bank int, bit uint)) *Controller {
	return &Controller{readPending: readPending, enable: enable}
}

// Enable turns on delivery for line. It satisfies sched.InterruptEnabler.
func (c *Controller) Enable(line trap.InterruptLine) {
	n := lineNumber[line]
	c.enable(int(n/32), n%32)
}

// IsPending reports whether line currently has an unserviced interrupt. It
// satisfies trap.PendingSource.
func (c *Controller) IsPending(line trap.InterruptLine) bool {
	n := lineNumber[line]
	return c.readPending(int(n/32))&(1<<(n%32)) != 0
}
