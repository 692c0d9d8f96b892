// Package sched is the preemptive round-robin scheduler: it owns every
// live process and decides, on every timer tick and every syscall that
// blocks or exits, which one runs next.
package sched

import (
	"mazarin/internal/proc"
	"mazarin/internal/trap"
)

// Scheduler holds every process not yet torn down, in a slice-backed ready
// queue rather than container/list: removing a Dead process must call its
// Teardown method inline as the process leaves the queue, and a slice lets
// that happen without a second pass over a linked list.
type Scheduler struct {
	processes []*proc.Process
	lastID    proc.Id
	hasLastID bool
	now       func() uint64
}

// newScheduler constructs an empty Scheduler. now reports the current
// monotonic time in microseconds, used to evaluate Waiting processes.
func newScheduler(now func() uint64) *Scheduler {
	return &Scheduler{now: now}
}

// add assigns the next PID to p and appends it to the ready queue. It
// returns false if the PID space (a uint64 counter) is exhausted — this
// kernel never reclaims PIDs, matching the original's checked_add.
func (s *Scheduler) add(p *proc.Process) (proc.Id, bool) {
	var next proc.Id
	if s.hasLastID {
		if s.lastID == ^proc.Id(0) {
			return 0, false
		}
		next = s.lastID + 1
	} else {
		next = 0
	}
	p.Context.TPIDR = uint64(next)
	s.processes = append(s.processes, p)
	s.lastID = next
	s.hasLastID = true
	return next, true
}

// scheduleOut removes the Running process whose PID matches tf.TPIDR,
// saves tf into its context, and sets its new state. A process leaving as
// Dead is torn down immediately rather than requeued — this is the only
// place process resources are reclaimed outside of kill. It reports
// whether a matching Running process was found.
func (s *Scheduler) scheduleOut(newState proc.State, tf *trap.TrapFrame) bool {
	idx := s.indexOfRunning(tf.TPIDR)
	if idx < 0 {
		return false
	}
	p := s.remove(idx)
	*p.Context = *tf
	p.State = newState
	if newState.Kind == proc.Dead {
		p.Teardown()
		return true
	}
	s.processes = append(s.processes, p)
	return true
}

// switchTo scans the ready queue from the front for the first process
// whose IsReady predicate fires, loads it into tf, and moves it to the
// front of the queue (so a process that immediately blocks again doesn't
// starve everything behind it). It reports the loaded process's PID, or
// false if nothing is ready.
func (s *Scheduler) switchTo(tf *trap.TrapFrame) (proc.Id, bool) {
	now := s.now()
	for i, p := range s.processes {
		if !p.IsReady(now) {
			continue
		}
		s.processes = append(s.processes[:i], s.processes[i+1:]...)
		pid := proc.Id(p.Context.TPIDR)
		p.State = proc.State{Kind: proc.Running}
		*tf = *p.Context
		s.processes = append([]*proc.Process{p}, s.processes...)
		return pid, true
	}
	return 0, false
}

// kill removes and tears down the Running process matching tf.TPIDR, then
// dispatches the next ready process into tf. It reports the killed
// process's PID, or false if no Running process matched.
func (s *Scheduler) kill(tf *trap.TrapFrame) (proc.Id, bool) {
	idx := s.indexOfRunning(tf.TPIDR)
	if idx < 0 {
		return 0, false
	}
	p := s.remove(idx)
	pid := proc.Id(p.Context.TPIDR)
	p.State = proc.State{Kind: proc.Dead}
	p.Teardown()
	s.switchTo(tf)
	return pid, true
}

func (s *Scheduler) indexOfRunning(pid uint64) int {
	for i, p := range s.processes {
		if p.State.Kind == proc.Running && p.Context.TPIDR == pid {
			return i
		}
	}
	return -1
}

func (s *Scheduler) remove(idx int) *proc.Process {
	p := s.processes[idx]
	s.processes = append(s.processes[:idx], s.processes[idx+1:]...)
	return p
}

// Len reports how many processes the scheduler currently owns, live or
// waiting. Used by diagnostics (internal/splash's process table overlay).
func (s *Scheduler) Len() int {
	return len(s.processes)
}

// Snapshot returns a shallow copy of the ready queue for read-only
// inspection — callers must not mutate the returned processes.
func (s *Scheduler) Snapshot() []*proc.Process {
	out := make([]*proc.Process, len(s.processes))
	copy(out, s.processes)
	return out
}
