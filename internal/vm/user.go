package vm

import (
	"unsafe"

	"mazarin/internal/allocator"
)

// UserPageTable is created empty (both L3s all-invalid) with USER_RW L2
// permission; pages are added one at a time by Alloc as a process's flat
// binary is loaded.
type UserPageTable struct {
	*PageTable
	bin *allocator.Bin
}

// NewUserPageTable constructs an empty user page table backed by bin for
// page allocation and teardown.
func NewUserPageTable(bin *allocator.Bin) *UserPageTable {
	return &UserPageTable{PageTable: newPageTable(apUserRW), bin: bin}
}

// Alloc allocates a page and maps it at va. perm is accepted but, matching
// a documented open question in the design this implements, not plumbed
// through to the descriptor: every user page maps USER_RW regardless of
// RO/RWX. It panics if va is below userImgBase, if va is already mapped, or
// if the allocator is exhausted — all three are internal invariant
// violations with no sane recovery mid-load.
func (u *UserPageTable) Alloc(va uintptr, perm Perm, userImgBase uintptr) []byte {
	if va < userImgBase {
		panic("vm: invalid virtual address below USER_IMG_BASE")
	}
	if u.IsValid(va) {
		panic("vm: address already allocated")
	}
	pageAddr := u.bin.Alloc(PageSize, PageSize)
	if pageAddr == 0 {
		panic("vm: could not allocate page")
	}
	entry := newL3PageDescriptor(pageAddr, attrNormal, apUserRW, shInner)
	u.setEntry(va, entry)

	return unsafe.Slice((*byte)(unsafe.Pointer(pageAddr)), PageSize)
}

// Teardown returns every mapped user page to the allocator. It is the only
// reclamation path for a process's pages and must be called exactly once,
// when the owning process is removed from the scheduler as Dead.
func (u *UserPageTable) Teardown() {
	u.allEntries(func(e RawL3Entry) {
		if e.Valid() {
			u.bin.Dealloc(e.Addr(), PageSize, PageSize)
		}
	})
}
