package bitfield

// DescriptorAttrs packs the non-address attribute bits shared by AArch64
// L2 table descriptors and L3 page descriptors. The address field of a real
// descriptor is handled separately by internal/vm (it is wider than fits
// cleanly beside these attribute bits and is always 64 KiB-aligned), so only
// the attribute byte range is modeled here.
type DescriptorAttrs struct {
	// Valid marks the descriptor as present.
	Valid bool `bitfield:",1"`

	// Table is bit 1, the descriptor Type bit. Both an L2 table descriptor
	// and an L3 page descriptor require bits[1:0] == 0b11 in the real
	// encoding, so internal/vm sets it for both kinds.
	Table bool `bitfield:",1"`

	// AttrIndx selects a MAIR slot: 0 normal memory, 1 device, 2 non-cacheable.
	AttrIndx uint8 `bitfield:",2"`

	// AP is the access-permission encoding (kernel-RW, user-RW, read-only, ...).
	AP uint8 `bitfield:",2"`

	// SH is the shareability domain: 0 non-shareable, 2 outer, 3 inner.
	SH uint8 `bitfield:",2"`

	// AF is the access flag; hardware requires it set or every access faults.
	AF bool `bitfield:",1"`

	// NG marks the mapping as not-global (per-process, never set for the
	// kernel identity map).
	NG bool `bitfield:",1"`
}

// PackDescriptorAttrs packs a into its 10-bit wire form.
func PackDescriptorAttrs(a DescriptorAttrs) (uint32, error) {
	packed, err := Pack(a, &Config{NumBits: 10})
	return uint32(packed), err
}

// UnpackDescriptorAttrs is the inverse of PackDescriptorAttrs.
func UnpackDescriptorAttrs(packed uint32) DescriptorAttrs {
	var a DescriptorAttrs
	_ = Unpack(uint64(packed), &a)
	return a
}
