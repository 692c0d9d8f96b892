package trap

import "testing"

func esrWithEC(ec uint32, iss uint32) uint32 {
	return (ec << 26) | (iss & 0x1FFFFFF)
}

func TestDecodeSyndromeBasicKinds(t *testing.T) {
	cases := []struct {
		name string
		esr  uint32
		want SyndromeKind
	}{
		{"unknown", esrWithEC(ecUnknown, 0), Unknown},
		{"wfi", esrWithEC(ecWfiWfe, 0), WfiWfe},
		{"simd", esrWithEC(ecSimdFP, 0), SimdFp},
		{"illegal", esrWithEC(ecIllegalExec, 0), IllegalExecState},
		{"msr", esrWithEC(ecMsrMrs, 0), MsrMrsSystem},
		{"pc-align", esrWithEC(ecPCAlignment, 0), PCAlignmentFault},
		{"sp-align", esrWithEC(ecSPAlignment, 0), SpAlignmentFault},
		{"fpu", esrWithEC(ecTrappedFPU1, 0), TrappedFpu},
		{"serror", esrWithEC(ecSError, 0), SErrorSyndrome},
		{"bp", esrWithEC(ecBreakpoint1, 0), Breakpoint},
		{"step", esrWithEC(ecStep1, 0), Step},
		{"watch", esrWithEC(ecWatchpoint1, 0), Watchpoint},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := DecodeSyndrome(c.esr).Kind; got != c.want {
				t.Errorf("DecodeSyndrome(%#x).Kind = %v, want %v", c.esr, got, c.want)
			}
		})
	}
}

func TestDecodeSyndromeSvcImmediate(t *testing.T) {
	esr := esrWithEC(ecSvc64, 0x0005)
	s := DecodeSyndrome(esr)
	if s.Kind != Svc {
		t.Fatalf("Kind = %v, want Svc", s.Kind)
	}
	if s.Imm16 != 5 {
		t.Errorf("Imm16 = %d, want 5", s.Imm16)
	}
}

func TestDecodeSyndromeBrkImmediate(t *testing.T) {
	esr := esrWithEC(ecBrk, 0x00BE)
	s := DecodeSyndrome(esr)
	if s.Kind != Brk {
		t.Fatalf("Kind = %v, want Brk", s.Kind)
	}
	if s.Imm16 != 0xBE {
		t.Errorf("Imm16 = %#x, want 0xbe", s.Imm16)
	}
}

func TestDecodeSyndromeDataAbortFault(t *testing.T) {
	// DFSC = 0b0001 (Translation fault), level = 3.
	iss := uint32(0b0001<<2) | 0b11
	esr := esrWithEC(ecDAbortLower, iss)
	s := DecodeSyndrome(esr)
	if s.Kind != DataAbort {
		t.Fatalf("Kind = %v, want DataAbort", s.Kind)
	}
	if s.Fault != FaultTranslation {
		t.Errorf("Fault = %v, want FaultTranslation", s.Fault)
	}
	if s.Level != 3 {
		t.Errorf("Level = %d, want 3", s.Level)
	}
}

func TestDecodeSyndromeInstructionAbortFault(t *testing.T) {
	iss := uint32(0b0011<<2) | 0b01 // Permission fault, level 1
	esr := esrWithEC(ecIAbortCurrent, iss)
	s := DecodeSyndrome(esr)
	if s.Kind != InstructionAbort {
		t.Fatalf("Kind = %v, want InstructionAbort", s.Kind)
	}
	if s.Fault != FaultPermission {
		t.Errorf("Fault = %v, want FaultPermission", s.Fault)
	}
	if s.Level != 1 {
		t.Errorf("Level = %d, want 1", s.Level)
	}
}

func TestDecodeSyndromeOther(t *testing.T) {
	esr := esrWithEC(0b111111, 0x42)
	s := DecodeSyndrome(esr)
	if s.Kind != Other {
		t.Fatalf("Kind = %v, want Other", s.Kind)
	}
	if s.Raw != esr {
		t.Errorf("Raw = %#x, want %#x", s.Raw, esr)
	}
}
