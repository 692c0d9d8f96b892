// Package trap implements the trap dispatcher (C3): the fixed-layout
// TrapFrame, ESR syndrome decode, and routing of synchronous exceptions,
// IRQs, and system calls to their handlers.
package trap

// TrapFrame is the fixed-layout register snapshot saved on every exception
// entry. The field order is load-bearing: assembly entry/exit paths index
// it by offset, so it must never be reordered or have fields inserted.
type TrapFrame struct {
	TTBR0 uint64
	TTBR1 uint64
	ELR   uint64 // exception link register: PC to resume at on return
	SPSR  uint64 // saved processor state
	SP    uint64
	TPIDR uint64 // repurposed as the owning process's PID

	Q [32][2]uint64 // 32 128-bit SIMD registers, each as two uint64 halves
	X [31]uint64    // 31 64-bit general-purpose registers
}

// Kind is the exception kind: Synchronous, IRQ, FIQ, or SError.
type Kind uint16

const (
	Synchronous Kind = iota
	IRQ
	FIQ
	SError
)

// Source is which of the four exception-vector groups fired.
type Source uint16

const (
	CurrentSpEl0 Source = iota
	CurrentSpElx
	LowerAArch64
	LowerAArch32
)

// Info identifies which of the 16 exception vectors (Source x Kind) a trap
// entered through.
type Info struct {
	Source Source
	Kind   Kind
}
