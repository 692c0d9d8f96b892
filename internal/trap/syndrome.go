package trap

// Exception class values from ESR_EL1[31:26] (ARM DDI 0487, D1.10.4),
// matching the EC_* constants the teacher's exceptions.go extracts via
// extractEC.
const (
	ecUnknown       = 0b000000
	ecWfiWfe        = 0b000001
	ecSimdFP        = 0b000111
	ecIllegalExec   = 0b001110
	ecSvc32         = 0b010001
	ecSvc64         = 0b010101
	ecHvc32         = 0b010010
	ecHvc64         = 0b010110
	ecSmc32         = 0b010011
	ecSmc64         = 0b010111
	ecMsrMrs        = 0b011000
	ecIAbortLower   = 0b100000
	ecIAbortCurrent = 0b100001
	ecPCAlignment   = 0b100010
	ecDAbortLower   = 0b100100
	ecDAbortCurrent = 0b100101
	ecSPAlignment   = 0b100110
	ecTrappedFPU1   = 0b101000
	ecTrappedFPU2   = 0b101100
	ecSError        = 0b101111
	ecBreakpoint1   = 0b110000
	ecBreakpoint2   = 0b110001
	ecStep1         = 0b110010
	ecStep2         = 0b110011
	ecWatchpoint1   = 0b110100
	ecWatchpoint2   = 0b110101
	ecBrk           = 0b111100
)

// Fault is the sub-decode of an InstructionAbort/DataAbort's DFSC/IFSC
// field (ESR[5:2], with bit 0 of the status code distinguishing
// TlbConflict from an other level-specific code in the 0b1100 group).
type Fault int

const (
	FaultAddressSize Fault = iota
	FaultTranslation
	FaultAccessFlag
	FaultPermission
	FaultAlignment
	FaultTlbConflict
	FaultOther
)

func decodeFault(esr uint32) (Fault, uint8) {
	switch (esr & (0b1111 << 2)) >> 2 {
	case 0b0000:
		return FaultAddressSize, 0
	case 0b0001:
		return FaultTranslation, 0
	case 0b0010:
		return FaultAccessFlag, 0
	case 0b0011:
		return FaultPermission, 0
	case 0b1000:
		return FaultAlignment, 0
	case 0b1100:
		if esr&0b1 == 0 {
			return FaultTlbConflict, 0
		}
		return FaultOther, uint8(esr & 0b111111)
	default:
		return FaultOther, uint8(esr & 0b111111)
	}
}

// SyndromeKind tags the variant of a decoded Syndrome.
type SyndromeKind int

const (
	Unknown SyndromeKind = iota
	WfiWfe
	SimdFp
	IllegalExecState
	Svc
	Hvc
	Smc
	MsrMrsSystem
	InstructionAbort
	PCAlignmentFault
	DataAbort
	SpAlignmentFault
	TrappedFpu
	SErrorSyndrome
	Breakpoint
	Step
	Watchpoint
	Brk
	Other
)

// Syndrome is the decoded form of ESR_EL1, a tagged union over SyndromeKind.
// Only the fields relevant to Kind are meaningful.
type Syndrome struct {
	Kind  SyndromeKind
	Imm16 uint16 // Svc/Hvc/Smc/Brk immediate
	Fault Fault  // InstructionAbort/DataAbort
	Level uint8  // InstructionAbort/DataAbort translation level
	Raw   uint32 // Other: the untouched ESR value
}

// ecField extracts ESR_EL1.EC, bits [31:26].
func ecField(esr uint32) uint32 {
	return (esr >> 26) & 0x3F
}

// immField extracts the 16-bit SVC/HVC/SMC immediate, ESR_EL1.ISS[15:0].
func immField(esr uint32) uint16 {
	return uint16(esr & 0xFFFF)
}

// brkImmField extracts the BRK comment field, also ESR_EL1.ISS[15:0].
func brkImmField(esr uint32) uint16 {
	return uint16(esr & 0xFFFF)
}

// DecodeSyndrome converts a raw ESR_EL1 value into a Syndrome.
func DecodeSyndrome(esr uint32) Syndrome {
	switch ecField(esr) {
	case ecUnknown:
		return Syndrome{Kind: Unknown}
	case ecWfiWfe:
		return Syndrome{Kind: WfiWfe}
	case ecSimdFP:
		return Syndrome{Kind: SimdFp}
	case ecIllegalExec:
		return Syndrome{Kind: IllegalExecState}
	case ecSvc32, ecSvc64:
		return Syndrome{Kind: Svc, Imm16: immField(esr)}
	case ecHvc32, ecHvc64:
		return Syndrome{Kind: Hvc, Imm16: immField(esr)}
	case ecSmc32, ecSmc64:
		return Syndrome{Kind: Smc, Imm16: immField(esr)}
	case ecMsrMrs:
		return Syndrome{Kind: MsrMrsSystem}
	case ecIAbortLower, ecIAbortCurrent:
		fault, _ := decodeFault(esr)
		return Syndrome{Kind: InstructionAbort, Fault: fault, Level: uint8(esr & 0b11)}
	case ecPCAlignment:
		return Syndrome{Kind: PCAlignmentFault}
	case ecDAbortLower, ecDAbortCurrent:
		fault, _ := decodeFault(esr)
		return Syndrome{Kind: DataAbort, Fault: fault, Level: uint8(esr & 0b11)}
	case ecSPAlignment:
		return Syndrome{Kind: SpAlignmentFault}
	case ecTrappedFPU1, ecTrappedFPU2:
		return Syndrome{Kind: TrappedFpu}
	case ecSError:
		return Syndrome{Kind: SErrorSyndrome}
	case ecBreakpoint1, ecBreakpoint2:
		return Syndrome{Kind: Breakpoint}
	case ecStep1, ecStep2:
		return Syndrome{Kind: Step}
	case ecWatchpoint1, ecWatchpoint2:
		return Syndrome{Kind: Watchpoint}
	case ecBrk:
		return Syndrome{Kind: Brk, Imm16: brkImmField(esr)}
	default:
		return Syndrome{Kind: Other, Raw: esr}
	}
}
