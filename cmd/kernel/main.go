// Command kernel is mazarin's second-stage image: the flat binary the
// bootloader jumps into after a successful transfer. KernelMain brings up
// the physical allocator, the kernel identity map, the trap dispatcher and
// scheduler, loads the demo processes, and hands off control — it never
// returns. Grounded on src/go/mazarin/kernel.go's boot ordering (UART
// first, then memory, then the rest) and original_source/kern/src/main.rs's
// panic-and-halt policy for anything that goes wrong along the way.
package main

import (
	"mazarin/internal/allocator"
	"mazarin/internal/console"
	"mazarin/internal/fs"
	"mazarin/internal/intc"
	"mazarin/internal/irq"
	"mazarin/internal/klog"
	"mazarin/internal/platform"
	"mazarin/internal/proc"
	"mazarin/internal/sched"
	"mazarin/internal/shell"
	"mazarin/internal/syscall"
	"mazarin/internal/systimer"
	"mazarin/internal/trap"
	"mazarin/internal/vm"
)

// demoProcessCount and demoBinaryPath match the original kernel's fixed
// four-process smoke test: four copies of the same flat binary, loaded
// from the boot filesystem by internal/proc.Load.
const (
	demoProcessCount = 4
	demoBinaryPath   = "/fib.bin"
)

// Hardware bundles every board-specific resource KernelMain needs. On a
// real board, hardware_aarch64.go's newHardware constructs one from the
// Config that the build-tagged boardconfig_qemuvirt.go or
// boardconfig_raspi3.go selects; tests construct their own out of fakes, so
// none of this package's logic is tied to real MMIO.
type Hardware struct {
	Config  platform.Config
	Console *console.Console
	Timer   *systimer.Timer
	Intc    *intc.Controller
	WFI     func()
	Enter   sched.EnterUser
}

// kernel holds every resource build wires together, so KernelMain's own
// body stays a short, readable sequence and tests can inspect the result
// of build without triggering Start's infinite handoff.
type kernel struct {
	hw       Hardware
	bin      *allocator.Bin
	kpt      *vm.KernelPageTable
	irqs     *irq.Registry
	dispatch *trap.Dispatcher
	gsched   *sched.GlobalScheduler
}

// build performs every boot step up to, but not including, Start: it is
// the host-testable core of KernelMain.
func build(hw Hardware, fsys fs.FileSystem) (*kernel, error) {
	klog.Putln(hw.Console, "mazarin: booting on "+hw.Config.Name)

	bin := allocator.New(hw.Config.RAMStart, hw.Config.RAMEnd-hw.Config.RAMStart)
	klog.Puts(hw.Console, "mazarin: allocator owns [")
	klog.PutHex64(hw.Console, uint64(hw.Config.RAMStart))
	klog.Puts(hw.Console, ", ")
	klog.PutHex64(hw.Console, uint64(hw.Config.RAMEnd))
	klog.Putln(hw.Console, ")")

	kpt := vm.NewKernelPageTable(hw.Config.RAMEnd, hw.Config.IOBase, hw.Config.IOEnd)
	ttbr0 := kpt.BaseAddr()

	irqs := irq.New()
	gsched := sched.New()

	syscalls := &syscall.Handlers{
		Sched:   gsched,
		Clock:   hw.Timer,
		Console: hw.Console,
		WFI:     hw.WFI,
	}

	sh := shell.New(hw.Config.Name+"> ", hw.Console, fsys)
	shell.Sleep = func(ms uint32) (uint64, error) {
		deadline := hw.Timer.NowMicros() + uint64(ms)*1000
		for hw.Timer.NowMicros() < deadline {
		}
		return uint64(ms), nil
	}

	dispatch := &trap.Dispatcher{
		OnBrk: func(tf *trap.TrapFrame) { sh.Run() },
		OnSvc: func(imm16 uint16, tf *trap.TrapFrame) { syscalls.Dispatch(imm16, tf) },
		OnUnhandled: func(s trap.Syndrome, tf *trap.TrapFrame) {
			klog.Puts(hw.Console, "mazarin: unhandled syndrome kind=")
			klog.PutUint64(hw.Console, uint64(s.Kind))
			klog.Panic(hw.Console, "mazarin: halting")
		},
		Controller: hw.Intc,
		IRQs:       irqs,
	}

	load := func() (*proc.Process, error) {
		return proc.Load(demoBinaryPath, fsys, bin, ttbr0, hw.Config.UserImageBase)
	}
	if err := gsched.Initialize(hw.Timer.NowMicros, load, demoProcessCount); err != nil {
		klog.Puts(hw.Console, "mazarin: failed to load demo processes: ")
		klog.Putln(hw.Console, err.Error())
		return nil, err
	}

	klog.Putln(hw.Console, "mazarin: scheduler ready, entering first process")

	return &kernel{
		hw:       hw,
		bin:      bin,
		kpt:      kpt,
		irqs:     irqs,
		dispatch: dispatch,
		gsched:   gsched,
	}, nil
}

// activeDispatcher is the single live Dispatcher the exception vector
// table (src/asm/vectors.s, not part of this port) branches into for all
// 16 vectors; KernelMain sets it once, before Start ever enables interrupt
// delivery.
var activeDispatcher *trap.Dispatcher

// KernelMain runs every boot step and hands off to the first ready
// process. It never returns: Start's final enter is the asm eret
// trampoline.
func KernelMain(hw Hardware, fsys fs.FileSystem) {
	k, err := build(hw, fsys)
	if err != nil {
		klog.Panic(hw.Console, "mazarin: boot failed, halting")
	}
	activeDispatcher = k.dispatch
	k.gsched.Start(k.irqs, hw.Timer, hw.Intc, hw.Config.TickMicros, hw.WFI, hw.Enter)
}
