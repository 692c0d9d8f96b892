// Package irq is the process-wide interrupt handler registry: a table
// keyed by interrupt line holding at most one owned handler per line.
// Concurrent access is guarded by the Registry's own mutex, which is
// separate from the scheduler's lock. It matches the "IRQ registry"
// first-class module the distillation folded into the trap dispatcher but
// the original kernel keeps as its own unit (kern/src/traps/irq.rs).
package irq

import (
	"sync"

	"mazarin/internal/trap"
)

// Handler reacts to a pending interrupt line. Handlers take the trap frame
// so they may redirect execution — the timer handler uses this to drive a
// reschedule.
type Handler func(tf *trap.TrapFrame)

// Registry is a handler table, a map with at most one entry per
// trap.InterruptLine.
type Registry struct {
	mu       sync.Mutex
	handlers map[trap.InterruptLine]Handler
}

// New constructs an empty Registry.
func New() *Registry {
	return &Registry{handlers: make(map[trap.InterruptLine]Handler)}
}

// Register installs handler for line, replacing any existing handler.
func (r *Registry) Register(line trap.InterruptLine, handler Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers[line] = handler
}

// Invoke calls the handler registered for line, if any. It satisfies
// trap.Registry.
func (r *Registry) Invoke(line trap.InterruptLine, tf *trap.TrapFrame) {
	r.mu.Lock()
	handler := r.handlers[line]
	r.mu.Unlock()
	if handler != nil {
		handler(tf)
	}
}
