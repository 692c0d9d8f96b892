package proc

import "mazarin/internal/allocator"

// StackPages is the number of 64 KiB pages given to each process's kernel
// stack. One page is generous for the tiny user programs this kernel runs,
// but stacks are not currently grown on overflow.
const StackPages = 1

// StackSize is the byte size of a process's kernel stack.
const StackSize = StackPages * 64 * 1024

// Stack is a process's dedicated kernel-mode stack, carved from the same
// physical bin the page-table allocator uses.
type Stack struct {
	bin  *allocator.Bin
	base uintptr
}

// NewStack allocates a zero Stack if bin is nil (used by tests that never
// touch Top), otherwise a StackSize, StackSize-aligned block.
func NewStack(bin *allocator.Bin) Stack {
	if bin == nil {
		return Stack{}
	}
	base := bin.Alloc(StackSize, StackSize)
	return Stack{bin: bin, base: base}
}

// Top returns the initial stack pointer: one past the highest address in
// the stack's block, since AArch64 stacks grow downward.
func (s Stack) Top() uintptr {
	return s.base + StackSize
}

// Free returns the stack's block to its allocator. Called by
// Process.Teardown.
func (s Stack) Free() {
	if s.bin == nil {
		return
	}
	s.bin.Dealloc(s.base, StackSize, StackSize)
}
