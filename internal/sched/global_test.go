package sched

import (
	"testing"

	"mazarin/internal/proc"
	"mazarin/internal/trap"
)

func TestCriticalPanicsBeforeInitialize(t *testing.T) {
	g := New()
	defer func() {
		if recover() == nil {
			t.Fatal("expected Critical to panic before Initialize")
		}
	}()
	g.Critical(func(s *Scheduler) interface{} { return nil })
}

func TestInitializeLoadsNProcesses(t *testing.T) {
	g := New()
	loads := 0
	err := g.Initialize(fixedNow(0), func() (*proc.Process, error) {
		loads++
		return proc.New(nil), nil
	}, 4)
	if err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}
	if loads != 4 {
		t.Errorf("load called %d times, want 4", loads)
	}

	var tf trap.TrapFrame
	pid := g.SwitchTo(&tf, func() { t.Fatal("wfi called with a ready process available") })
	if pid != 0 {
		t.Errorf("first dispatched PID = %d, want 0", pid)
	}
}

func TestSwitchToWaitsOnWfiUntilReady(t *testing.T) {
	g := New()
	g.Initialize(fixedNow(0), func() (*proc.Process, error) {
		p := proc.New(nil)
		p.Sleep(0, 1) // never becomes ready under fixedNow(0)
		return p, nil
	}, 1)

	var tf trap.TrapFrame
	wfiCalls := 0
	pid := g.SwitchTo(&tf, func() {
		wfiCalls++
		if wfiCalls == 3 {
			g.Critical(func(s *Scheduler) interface{} {
				s.processes[0].State = proc.State{Kind: proc.Ready}
				return nil
			})
		}
	})
	if pid != 0 {
		t.Errorf("pid = %d, want 0", pid)
	}
	if wfiCalls < 3 {
		t.Errorf("wfi called %d times, want at least 3", wfiCalls)
	}
}

func TestAddAndKillRoundTrip(t *testing.T) {
	g := New()
	g.Initialize(fixedNow(0), func() (*proc.Process, error) { return nil, nil }, 0)

	id, ok := g.Add(proc.New(nil))
	if !ok || id != 0 {
		t.Fatalf("Add returned id=%d ok=%v, want 0 true", id, ok)
	}

	var tf trap.TrapFrame
	g.SwitchTo(&tf, func() { t.Fatal("wfi should not be needed") })

	killedID, ok := g.Kill(&tf)
	if !ok || killedID != 0 {
		t.Fatalf("Kill returned id=%d ok=%v, want 0 true", killedID, ok)
	}
}
