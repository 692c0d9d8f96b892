// Package vm implements the two-level AArch64 page-table manager: the
// kernel identity map and per-process user maps, built on top of
// internal/allocator. The 64 KiB translation granule drives every layout
// decision here; there is no L0/L1 level because this kernel supports only
// the first 1 GiB of each translation regime.
package vm

import (
	"unsafe"

	"mazarin/internal/bitfield"
)

// PageSize is the 64 KiB granule.
const PageSize = 64 * 1024

// entriesPerTable is PageSize / 8 bytes per entry.
const entriesPerTable = PageSize / 8

// Perm is the permission a caller requests for a user page. The current
// design does not plumb Perm through to the descriptor (see Alloc) — this
// mirrors an open question in the original design rather than a Go-side bug.
type Perm int

const (
	RW Perm = iota
	RO
	RWX
)

// AP (access permission) encodings for L2/L3 descriptors, matching the
// ARMv8 AP[2:1] field semantics the teacher's mmu.go table documents.
const (
	apKernRW uint8 = 0 // RW at EL1, no access at EL0
	apUserRW uint8 = 1 // RW at EL1 and EL0
)

// AttrIndx MAIR slot selection.
const (
	attrNormal uint8 = 0
	attrDevice uint8 = 1
)

// Shareability domain encodings.
const (
	shInner uint8 = 3
	shOuter uint8 = 2
)

func descriptorBits(table bool, attrIndx, ap, sh uint8) uint64 {
	packed, err := bitfield.PackDescriptorAttrs(bitfield.DescriptorAttrs{
		Valid:    true,
		Table:    table,
		AttrIndx: attrIndx,
		AP:       ap,
		SH:       sh,
		AF:       true,
	})
	if err != nil {
		panic(err)
	}
	return uint64(packed)
}

// addrMask selects bits [47:16] of a descriptor, the ADDR field for a 64 KiB
// granule (the low 16 address bits are implied zero by page alignment).
const addrMask = uint64(0x0000FFFFFFFF0000)

// RawL2Entry is one 8-byte table descriptor: Valid, Type=Table, AF, AP, SH,
// attr, plus the physical address of the L3 table it points at.
type RawL2Entry uint64

func newL2TableDescriptor(l3Addr uintptr, ap uint8) RawL2Entry {
	bits := descriptorBits(true, attrNormal, ap, shInner)
	return RawL2Entry(bits | (uint64(l3Addr) & addrMask))
}

func (e RawL2Entry) valid() bool {
	return e&1 != 0
}

func (e RawL2Entry) addr() uintptr {
	return uintptr(uint64(e) & addrMask)
}

// RawL3Entry is one 8-byte page descriptor: Valid, Type=Page, AF, AP, SH,
// attr, plus the physical address of the mapped page.
type RawL3Entry uint64

func newL3PageDescriptor(pageAddr uintptr, attrIndx, ap, sh uint8) RawL3Entry {
	// A page descriptor has the same bits[1:0] = 0b11 as a table
	// descriptor, so the Table (Type) bit is set here as well.
	bits := descriptorBits(true, attrIndx, ap, sh)
	return RawL3Entry(bits | (uint64(pageAddr) & addrMask))
}

func (e RawL3Entry) Valid() bool {
	return e&1 != 0
}

func (e RawL3Entry) Addr() uintptr {
	return uintptr(uint64(e) & addrMask)
}

// L2Table is the top level for the 1 GiB virtual range this OS supports:
// 8192 entries, one page, only the first two ever populated.
type L2Table struct {
	Entries [entriesPerTable]RawL2Entry
}

// L3Table covers 512 MiB of virtual space in 64 KiB pages: 8192 entries,
// one page.
type L3Table struct {
	Entries [entriesPerTable]RawL3Entry
}

// PageTable is one L2 table plus two L3 tables, laid out contiguously and
// 64 KiB-aligned. newPageTable carves all three out of one Go-heap buffer,
// since Go cannot express repr(align); they are not taken from
// internal/allocator.
type PageTable struct {
	L2 *L2Table
	L3 [2]*L3Table
}

// newPageTable builds an empty PageTable whose L2 entries already point at
// the (empty) L3 tables with table-descriptor semantics and the given L2
// access permission. The buffer has one spare page so its start can be
// rounded up to a 64 KiB boundary.
func newPageTable(ap uint8) *PageTable {
	buf := make([]byte, 4*PageSize)
	start := uintptr(unsafe.Pointer(&buf[0]))
	off := int((start+PageSize-1)&^(PageSize-1) - start)
	pt := &PageTable{
		L2: (*L2Table)(unsafe.Pointer(&buf[off])),
		L3: [2]*L3Table{
			(*L3Table)(unsafe.Pointer(&buf[off+PageSize])),
			(*L3Table)(unsafe.Pointer(&buf[off+2*PageSize])),
		},
	}
	for i := range pt.L3 {
		pt.L2.Entries[i] = newL2TableDescriptor(l3PhysAddr(pt.L3[i]), ap)
	}
	return pt
}

// l3PhysAddr returns the address internal/vm treats as the physical address
// of t. On real hardware this is simply its address since kernel RAM is
// identity mapped; host tests run entirely with Go-heap-backed tables, so
// the "physical" address is just the Go pointer value.
func l3PhysAddr(t *L3Table) uintptr {
	return uintptr(unsafe.Pointer(t))
}

// locate extracts (l2Index, l3Index) from a virtual address: L2_index =
// bit 29, L3_index = bits 28:16.
func locate(va uintptr) (l2, l3 int) {
	l2 = int((va >> 29) & 1)
	l3 = int((va >> 16) & 0x1FFF)
	return
}

// IsValid reports whether the L3 entry addressed by va is valid.
func (pt *PageTable) IsValid(va uintptr) bool {
	l2i, l3i := locate(va)
	l2e := pt.L2.Entries[l2i]
	if !l2e.valid() {
		return false
	}
	l3 := pt.l3TableAt(l2e)
	return l3.Entries[l3i].Valid()
}

// l3TableAt resolves the L3Table an L2 entry points at back to one of pt's
// two owned tables, matching the original's address-delta lookup.
func (pt *PageTable) l3TableAt(l2e RawL2Entry) *L3Table {
	target := l2e.addr()
	for _, t := range pt.L3 {
		if l3PhysAddr(t) == target {
			return t
		}
	}
	panic("vm: L2 entry does not reference an owned L3 table")
}

// setEntry writes entry into the L3 slot va addresses.
func (pt *PageTable) setEntry(va uintptr, entry RawL3Entry) {
	l2i, l3i := locate(va)
	l3 := pt.l3TableAt(pt.L2.Entries[l2i])
	l3.Entries[l3i] = entry
}

// BaseAddr returns the address the kernel would load into a translation
// table base register for pt.
func (pt *PageTable) BaseAddr() uintptr {
	return uintptr(unsafe.Pointer(pt.L2))
}

// allEntries iterates every L3 entry across both tables, matching the
// original's Chain<Iter, Iter> IntoIterator.
func (pt *PageTable) allEntries(fn func(RawL3Entry)) {
	for _, t := range pt.L3 {
		for _, e := range t.Entries {
			fn(e)
		}
	}
}
