package bitfield

import (
	"testing"
	"unsafe"
)

func TestDescriptorAttrsSize(t *testing.T) {
	var attrs DescriptorAttrs
	size := unsafe.Sizeof(attrs)
	t.Logf("DescriptorAttrs struct size: %d bytes (%d bits)", size, size*8)

	// 2 bools + 3 uint8 + 2 bools: Go does not pack these, just sanity check
	// it stays small and field-count-shaped.
	if size < 7 || size > 16 {
		t.Errorf("DescriptorAttrs size %d is unexpected (want 7..16)", size)
	}
}

func TestPackedAttrsFitsInTenBits(t *testing.T) {
	attrs := DescriptorAttrs{Valid: true, Table: true, AttrIndx: 3, AP: 3, SH: 3, AF: true, NG: true}
	packed, err := PackDescriptorAttrs(attrs)
	if err != nil {
		t.Fatalf("PackDescriptorAttrs error: %v", err)
	}
	if packed>>10 != 0 {
		t.Errorf("packed value exceeds 10 bits: 0x%x", packed)
	}
	// the maximal case uses every defined bit
	if packed != 0x3FF {
		t.Errorf("max packed = 0x%x, want 0x3ff", packed)
	}
}

func TestUnpackStableAcrossWidening(t *testing.T) {
	testValue := uint32(0x1C1)
	unpacked := UnpackDescriptorAttrs(testValue)

	var widened uint64 = uint64(testValue)
	unpacked2 := UnpackDescriptorAttrs(uint32(widened))

	if unpacked != unpacked2 {
		t.Errorf("unpacking differs between uint32 and widened uint64 cast")
	}
}
