package syscall

import (
	"testing"

	"mazarin/internal/proc"
	"mazarin/internal/sched"
	"mazarin/internal/trap"
	"mazarin/internal/userapi"
)

type fakeClock struct{ us uint64 }

func (c *fakeClock) NowMicros() uint64 { return c.us }
func (c *fakeClock) Now() (uint64, uint64) {
	return c.us / 1_000_000, (c.us % 1_000_000) * 1000
}

type fakeConsole struct{ written []byte }

func (c *fakeConsole) WriteByte(b byte) error {
	c.written = append(c.written, b)
	return nil
}

func newTestHandlers(t *testing.T, clock *fakeClock) (*Handlers, *sched.GlobalScheduler) {
	t.Helper()
	g := sched.New()
	if err := g.Initialize(clock.NowMicros, func() (*proc.Process, error) {
		return proc.New(nil), nil
	}, 1); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}
	return &Handlers{
		Sched:   g,
		Clock:   clock,
		Console: &fakeConsole{},
		WFI:     func() {},
	}, g
}

func TestSysGetpidReturnsTPIDR(t *testing.T) {
	clock := &fakeClock{}
	h, g := newTestHandlers(t, clock)

	var tf trap.TrapFrame
	g.SwitchTo(&tf, h.WFI)

	h.sysGetpid(&tf)
	if tf.X[userapi.RegResult0] != tf.TPIDR {
		t.Errorf("getpid result = %d, want %d", tf.X[userapi.RegResult0], tf.TPIDR)
	}
	if tf.X[userapi.RegStatus] != userapi.StatusSuccess {
		t.Error("getpid did not report success")
	}
}

func TestSysTimeReportsClock(t *testing.T) {
	clock := &fakeClock{us: 2_500_000}
	h, _ := newTestHandlers(t, clock)

	var tf trap.TrapFrame
	h.sysTime(&tf)
	if tf.X[userapi.RegResult0] != 2 {
		t.Errorf("seconds = %d, want 2", tf.X[userapi.RegResult0])
	}
	if tf.X[userapi.RegResult1] != 500_000_000 {
		t.Errorf("nanos = %d, want 500000000", tf.X[userapi.RegResult1])
	}
}

func TestSysWriteSendsToConsole(t *testing.T) {
	clock := &fakeClock{}
	h, _ := newTestHandlers(t, clock)
	console := h.Console.(*fakeConsole)

	var tf trap.TrapFrame
	tf.X[userapi.RegArg0] = 'A'
	h.sysWrite(&tf)

	if len(console.written) != 1 || console.written[0] != 'A' {
		t.Errorf("console got %v, want ['A']", console.written)
	}
	if tf.X[userapi.RegStatus] != userapi.StatusSuccess {
		t.Error("write did not report success")
	}
}

func TestSysSleepBlocksUntilWoken(t *testing.T) {
	clock := &fakeClock{}
	h, g := newTestHandlers(t, clock)

	var tf trap.TrapFrame
	g.SwitchTo(&tf, h.WFI)

	tf.X[userapi.RegArg0] = 10 // sleep 10ms

	wfiCalls := 0
	h.WFI = func() {
		wfiCalls++
		clock.us += 20_000 // advance 20ms so the sleep deadline passes
	}
	h.sysSleep(&tf)

	if tf.X[userapi.RegStatus] != userapi.StatusSuccess {
		t.Error("sleep did not report success on wake")
	}
	if wfiCalls == 0 {
		t.Error("sysSleep returned without ever waiting")
	}
}

func TestDispatchUnknownSyscallSignalsFailure(t *testing.T) {
	clock := &fakeClock{}
	h, _ := newTestHandlers(t, clock)

	var tf trap.TrapFrame
	tf.X[userapi.RegStatus] = userapi.StatusSuccess
	h.Dispatch(999, &tf)
	if tf.X[userapi.RegStatus] != userapi.StatusFailure {
		t.Errorf("RegStatus = %d, want StatusFailure for an unrecognized syscall number", tf.X[userapi.RegStatus])
	}
}
