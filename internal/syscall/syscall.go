// Package syscall implements the kernel side of the five-call SVC ABI
// internal/userapi documents: sleep, time, exit, write, and getpid. It is
// grounded on kern/src/traps/syscall.rs's handle_syscall dispatch and its
// five sys_* handlers.
package syscall

import (
	"mazarin/internal/proc"
	"mazarin/internal/sched"
	"mazarin/internal/trap"
	"mazarin/internal/userapi"
)

// Clock is the time source sys_sleep and sys_time read from. Satisfied by
// internal/systimer.
type Clock interface {
	NowMicros() uint64
	Now() (secs, nanos uint64)
}

// Console is where sys_write sends its byte. Satisfied by internal/console.
type Console interface {
	WriteByte(b byte) error
}

// Handlers bundles the kernel resources the five syscalls need. WFI is
// called by sys_sleep and sys_exit while waiting for the scheduler to find
// another ready process; it should put the core into low-power wait, or do
// nothing on a host build.
type Handlers struct {
	Sched   *sched.GlobalScheduler
	Clock   Clock
	Console Console
	WFI     func()
}

// Dispatch decodes num and runs the matching handler against tf. An
// unrecognized number is not dispatched to any handler, matching
// handle_syscall's catch-all kprintln branch, but still signals failure in
// x7 — the one part of that catch-all a caller can observe without a
// kernel log to read.
func (h *Handlers) Dispatch(num uint16, tf *trap.TrapFrame) {
	switch num {
	case userapi.NRSleep:
		h.sysSleep(tf)
	case userapi.NRTime:
		h.sysTime(tf)
	case userapi.NRExit:
		h.sysExit(tf)
	case userapi.NRWrite:
		h.sysWrite(tf)
	case userapi.NRGetpid:
		h.sysGetpid(tf)
	default:
		tf.X[userapi.RegStatus] = userapi.StatusFailure
	}
}

// sysSleep puts the calling process to sleep for tf.X[RegArg0] milliseconds,
// switching to another ready process in the meantime. On wake, proc's
// SleepUntil wait predicate has already filled in the elapsed time and
// status — see internal/proc.Process.IsReady.
func (h *Handlers) sysSleep(tf *trap.TrapFrame) {
	ms := tf.X[userapi.RegArg0]
	startUs := h.Clock.NowMicros()
	deadlineUs := startUs + ms*1000

	// A throwaway process carries no context of its own; Switch copies tf
	// into whichever process is currently Running before dispatching the
	// next one, so the Waiting state must be set through the scheduler,
	// not directly on a Process this handler doesn't have a reference to.
	h.Sched.Switch(proc.State{
		Kind: proc.Waiting,
		Wait: proc.WaitInfo{Kind: proc.SleepUntil, StartUs: startUs, DeadlineUs: deadlineUs},
	}, tf, h.WFI)
}

// sysTime reports the time since the system timer's counter started as
// (seconds, nanoseconds).
func (h *Handlers) sysTime(tf *trap.TrapFrame) {
	secs, nanos := h.Clock.Now()
	tf.X[userapi.RegResult0] = secs
	tf.X[userapi.RegResult1] = nanos
	tf.X[userapi.RegStatus] = userapi.StatusSuccess
}

// sysExit tears down the calling process and dispatches the next ready one.
func (h *Handlers) sysExit(tf *trap.TrapFrame) {
	h.Sched.Switch(proc.State{Kind: proc.Dead}, tf, h.WFI)
}

// sysWrite writes one byte to the console.
func (h *Handlers) sysWrite(tf *trap.TrapFrame) {
	b := byte(tf.X[userapi.RegArg0])
	if err := h.Console.WriteByte(b); err != nil {
		tf.X[userapi.RegStatus] = userapi.StatusFailure
		return
	}
	tf.X[userapi.RegStatus] = userapi.StatusSuccess
}

// sysGetpid reports the calling process's PID, stashed in TPIDR by
// internal/sched when the process was first scheduled.
func (h *Handlers) sysGetpid(tf *trap.TrapFrame) {
	tf.X[userapi.RegResult0] = tf.TPIDR
	tf.X[userapi.RegStatus] = userapi.StatusSuccess
}
