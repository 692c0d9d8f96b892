//go:build aarch64

package main

import (
	_ "unsafe" // for go:linkname

	"mazarin/internal/trap"
)

// handleException is branched into by the exception vector table
// (src/asm/vectors.s, not part of this port) for all 16 vectors, after
// assembly has pushed a fresh TrapFrame and decoded which vector fired
// into an Info. This is the one direction of the asm/Go boundary that
// flows into Go rather than out of it, so the symbol is exported by name
// rather than go:linkname-imported the way internal/systimer imports
// readCNTVCT.
//
//go:linkname handleException handleException
func handleException(info trap.Info, esr uint32, tf *trap.TrapFrame) {
	activeDispatcher.HandleException(info, esr, tf)
}
