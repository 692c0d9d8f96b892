// Package userapi documents the five-call SVC ABI this kernel's user
// processes use: an immediate selects the call, arguments and results move
// through the first eight general-purpose registers (x0-x7), and x7 is the
// status register — nonzero on success, zero on failure. It mirrors
// lib/kernel_api/src/syscall.rs's asm wrappers, minus the assembly: this
// kernel's user programs are flat binaries assembled separately, so this
// package exists to give the constants one named home; internal/syscall
// (the kernel side) is the package that uses them.
package userapi

// Syscall numbers, matched against the SVC instruction's 16-bit immediate.
const (
	NRSleep  = 1
	NRTime   = 2
	NRExit   = 3
	NRWrite  = 4
	NRGetpid = 5
)

// Register indices within TrapFrame.X, by convention:
//   - Args occupy x0, x1, ... in declared order.
//   - Results occupy x0, x1, ... in declared order, overwriting the
//     corresponding argument register.
//   - Status always lands in x7.
const (
	RegArg0    = 0
	RegArg1    = 1
	RegResult0 = 0
	RegResult1 = 1
	RegStatus  = 7
)

// StatusFailure and StatusSuccess are the two values RegStatus ever holds.
const (
	StatusFailure = 0
	StatusSuccess = 1
)
