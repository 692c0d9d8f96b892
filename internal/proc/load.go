package proc

import (
	"mazarin/internal/allocator"
	"mazarin/internal/fs"
	"mazarin/internal/oserr"
	"mazarin/internal/trap"
	"mazarin/internal/vm"
)

// UserStackTop is the highest stack pointer value any process starts with:
// the top of the virtual address space, rounded down to a page boundary.
// UserStackBase is the one page below it that backs the stack.
const (
	UserStackTop  = uintptr(0xFFFFFFFFFFFF0000)
	UserStackBase = UserStackTop - vm.PageSize
)

// SPSR bits every process starts with: EL0t with IRQ unmasked and debug,
// SError and FIQ masked (D, A and F set), matching the fixed eret target
// state the original always used.
const initialSPSR = (1 << 6) | (1 << 8) | (1 << 9)

// Load builds a Process from the flat binary at path: one RW stack page at
// UserStackBase, then the binary's bytes copied page by page into RWX pages
// starting at userImgBase. ttbr0 is the kernel page table's base address,
// shared by every process's TTBR0.
func Load(path string, fsys fs.FileSystem, bin *allocator.Bin, ttbr0 uintptr, userImgBase uintptr) (*Process, error) {
	vmap := vm.NewUserPageTable(bin)

	vmap.Alloc(UserStackBase, vm.RW, userImgBase)

	f, err := fs.OpenFile(fsys, path)
	if err != nil {
		return nil, oserr.New(oserr.NoEntry, "proc: "+path+" not found")
	}
	size, err := f.Size()
	if err != nil {
		return nil, oserr.New(oserr.IO, "proc: could not stat "+path)
	}

	var loaded int64
	for addr := userImgBase; loaded < size; addr += vm.PageSize {
		page := vmap.Alloc(addr, vm.RWX, userImgBase)
		n, err := f.Read(page)
		if n == 0 && err != nil {
			return nil, oserr.New(oserr.IO, "proc: short read loading "+path)
		}
		loaded += int64(n)
	}

	p := &Process{
		Context: &trap.TrapFrame{
			SP:    uint64(UserStackTop),
			SPSR:  initialSPSR,
			ELR:   uint64(userImgBase),
			TTBR0: uint64(ttbr0),
			TTBR1: uint64(vmap.BaseAddr()),
		},
		Stack: NewStack(bin),
		Vmap:  vmap,
		State: State{Kind: Ready},
	}
	return p, nil
}
