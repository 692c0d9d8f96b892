package irq

import (
	"testing"

	"mazarin/internal/trap"
)

func TestInvokeWithNoHandlerIsNoop(t *testing.T) {
	r := New()
	r.Invoke(trap.Timer1, &trap.TrapFrame{})
}

func TestRegisterThenInvoke(t *testing.T) {
	r := New()
	var called bool
	r.Register(trap.Timer1, func(tf *trap.TrapFrame) { called = true })
	r.Invoke(trap.Timer1, &trap.TrapFrame{})
	if !called {
		t.Fatal("registered handler was not invoked")
	}
}

func TestRegisterReplacesExistingHandler(t *testing.T) {
	r := New()
	var firstCalled, secondCalled bool
	r.Register(trap.UART, func(tf *trap.TrapFrame) { firstCalled = true })
	r.Register(trap.UART, func(tf *trap.TrapFrame) { secondCalled = true })
	r.Invoke(trap.UART, &trap.TrapFrame{})

	if firstCalled {
		t.Error("first handler was invoked after being replaced")
	}
	if !secondCalled {
		t.Error("replacement handler was not invoked")
	}
}

func TestHandlersAreIndependentPerLine(t *testing.T) {
	r := New()
	var timerCalled, uartCalled bool
	r.Register(trap.Timer1, func(tf *trap.TrapFrame) { timerCalled = true })
	r.Register(trap.UART, func(tf *trap.TrapFrame) { uartCalled = true })

	r.Invoke(trap.Timer1, &trap.TrapFrame{})
	if !timerCalled || uartCalled {
		t.Errorf("timerCalled=%v uartCalled=%v, want true/false", timerCalled, uartCalled)
	}
}
