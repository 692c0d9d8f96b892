package sched

import (
	"sync"

	"mazarin/internal/irq"
	"mazarin/internal/proc"
	"mazarin/internal/trap"
)

// TimerController arms the next preemption tick. Satisfied by
// internal/systimer.
type TimerController interface {
	TickIn(micros uint64)
}

// InterruptEnabler turns on delivery for one interrupt line. Satisfied by
// internal/intc.
type InterruptEnabler interface {
	Enable(line trap.InterruptLine)
}

// EnterUser restores a trap frame into live CPU/SIMD register state and
// executes `eret`, handing control to a user process; it never returns.
// This is the one operation this package cannot express in portable Go —
// it is hand-written assembly on real hardware, injected here the same
// way internal/trap injects OnBrk/OnSvc, so the rest of this package stays
// host-testable.
type EnterUser func(tf *trap.TrapFrame) // never returns on real hardware

// GlobalScheduler is the single process-wide Scheduler instance, guarded
// by one coarse mutex — matching the original kernel's single
// Mutex<Option<Scheduler>> policy rather than fine-grained per-process
// locks, since every scheduling decision touches the whole ready queue
// anyway.
type GlobalScheduler struct {
	mu  sync.Mutex
	sch *Scheduler
}

// New constructs an uninitialized GlobalScheduler. Initialize must run
// before Add/Switch/Kill are called.
func New() *GlobalScheduler {
	return &GlobalScheduler{}
}

// Critical runs f with the scheduler locked, panicking if Initialize has
// not yet run — a programming error this kernel has no business
// recovering from.
func (g *GlobalScheduler) Critical(f func(s *Scheduler) interface{}) interface{} {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.sch == nil {
		panic("sched: GlobalScheduler used before Initialize")
	}
	return f(g.sch)
}

// Add assigns a PID to p and enqueues it.
func (g *GlobalScheduler) Add(p *proc.Process) (proc.Id, bool) {
	type result struct {
		id proc.Id
		ok bool
	}
	r := g.Critical(func(s *Scheduler) interface{} {
		id, ok := s.add(p)
		return result{id, ok}
	}).(result)
	return r.id, r.ok
}

// Switch saves tf into the currently-Running process under newState, then
// loads the next ready process into tf, spinning on WFI while none is
// ready — mirroring GlobalScheduler::switch_to's retry loop, since a wait
// can be satisfied by a timer tick that fires while nothing else runs.
func (g *GlobalScheduler) Switch(newState proc.State, tf *trap.TrapFrame, wfi func()) proc.Id {
	g.Critical(func(s *Scheduler) interface{} {
		s.scheduleOut(newState, tf)
		return nil
	})
	return g.SwitchTo(tf, wfi)
}

// SwitchTo loads the next ready process into tf, retrying under WFI until
// one is ready.
func (g *GlobalScheduler) SwitchTo(tf *trap.TrapFrame, wfi func()) proc.Id {
	for {
		type result struct {
			id proc.Id
			ok bool
		}
		r := g.Critical(func(s *Scheduler) interface{} {
			id, ok := s.switchTo(tf)
			return result{id, ok}
		}).(result)
		if r.ok {
			return r.id
		}
		wfi()
	}
}

// Kill removes and tears down the Running process in tf, dispatching the
// next ready process into tf in its place.
func (g *GlobalScheduler) Kill(tf *trap.TrapFrame) (proc.Id, bool) {
	type result struct {
		id proc.Id
		ok bool
	}
	r := g.Critical(func(s *Scheduler) interface{} {
		id, ok := s.kill(tf)
		return result{id, ok}
	}).(result)
	return r.id, r.ok
}

// tick is installed as the Timer1 IRQ handler by Start: it re-arms the
// next tick, then preempts whatever is Running back to Ready.
func (g *GlobalScheduler) tick(timer TimerController, tickMicros uint64, wfi func()) irq.Handler {
	return func(tf *trap.TrapFrame) {
		timer.TickIn(tickMicros)
		g.Switch(proc.State{Kind: proc.Ready}, tf, wfi)
	}
}

// Initialize installs an empty Scheduler and adds n processes, each built
// by one call to load, matching the original kernel's fixed four-process
// demo boot. It stops at the first error load returns.
func (g *GlobalScheduler) Initialize(now func() uint64, load func() (*proc.Process, error), n int) error {
	g.mu.Lock()
	g.sch = newScheduler(now)
	g.mu.Unlock()

	for i := 0; i < n; i++ {
		p, err := load()
		if err != nil {
			return err
		}
		g.Add(p)
	}
	return nil
}

// Start arms the scheduler timer, wires Timer1 to tick, and hands off to
// the first ready process. It never returns on real hardware: once the
// initial SwitchTo has loaded a ready process into the scratch frame, enter
// (the asm eret trampoline) hands control to it.
func (g *GlobalScheduler) Start(irqs *irq.Registry, timer TimerController, intc InterruptEnabler, tickMicros uint64, wfi func(), enter EnterUser) {
	var scratch trap.TrapFrame
	g.SwitchTo(&scratch, wfi)

	irqs.Register(trap.Timer1, g.tick(timer, tickMicros, wfi))
	intc.Enable(trap.Timer1)
	timer.TickIn(tickMicros)

	enter(&scratch)
}
