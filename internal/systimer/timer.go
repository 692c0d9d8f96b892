// Package systimer wraps the ARM generic timer's virtual counter (CNTVCT_EL0)
// as the kernel's one time source, grounded on lib/pi/src/timer.rs's Timer
// and the teacher's timer_qemu.go counter/compare-register plumbing. Reading
// hardware registers is architecture-specific and lives in timer_aarch64.go;
// this file holds the portable arithmetic so it can be unit tested on the
// host.
package systimer

// Timer converts hardware tick counts to microseconds and arms the next
// preemption interrupt.
type Timer struct {
	readCounter func() uint64
	frequencyHz uint64
	arm         func(deadlineTicks uint64)
}

// New constructs a Timer from its three hardware hooks: a free-running tick
// counter, the counter's frequency in Hz, and a function that arms the
// comparator to fire at an absolute tick count.
func New(readCounter func() uint64, frequencyHz uint64, arm func(deadlineTicks uint64)) *Timer {
	return &Timer{readCounter: readCounter, frequencyHz: frequencyHz, arm: arm}
}

// NowMicros reports elapsed time since the counter started, in
// microseconds. Ticks are scaled up before dividing so sub-microsecond
// counter resolutions don't round away.
func (t *Timer) NowMicros() uint64 {
	return t.readCounter() * 1_000_000 / t.frequencyHz
}

// Now reports elapsed time since the counter started as (seconds,
// nanoseconds), matching sys_time's two-register result.
func (t *Timer) Now() (secs, nanos uint64) {
	us := t.NowMicros()
	return us / 1_000_000, (us % 1_000_000) * 1000
}

// TickIn arms the timer to fire micros from now.
func (t *Timer) TickIn(micros uint64) {
	deadlineTicks := t.readCounter() + micros*t.frequencyHz/1_000_000
	t.arm(deadlineTicks)
}
