//go:build raspi3 && aarch64

package splash

import (
	"image"
	"unsafe"

	"mazarin/internal/mmio"
)

// VideoCore mailbox property-channel request: ask the GPU for a framebuffer
// of the given dimensions at 32bpp, matching mailbox.go's request layout.
const (
	mailboxBase   = 0x3F00B880
	mailboxRead   = mailboxBase + 0x00
	mailboxStatus = mailboxBase + 0x18
	mailboxWrite  = mailboxBase + 0x20

	mailboxFull  = 1 << 31
	mailboxEmpty = 1 << 30

	propertyChannel = 8
)

// fbRequest is the 16-byte-aligned property-mailbox buffer requesting a
// framebuffer: physical + virtual size, depth, and (after the call
// completes) the GPU-allocated buffer address and pitch.
type fbRequest struct {
	bufSize   uint32
	reqCode   uint32
	tagSetPhys uint32
	tagSize1   uint32
	tagCode1   uint32
	width      uint32
	height     uint32
	tagSetVirt uint32
	tagSize2   uint32
	tagCode2   uint32
	vWidth     uint32
	vHeight    uint32
	tagSetDepth uint32
	tagSize3    uint32
	tagCode3    uint32
	depth       uint32
	tagAlloc    uint32
	tagSize4    uint32
	tagCode4    uint32
	bufPtr      uint32
	bufLen      uint32
	endTag      uint32
}

// HardwareSink is a Sink backed by the Raspberry Pi 3's VideoCore
// framebuffer, obtained once at boot via the property mailbox. Grounded on
// mailbox.go's request/response protocol and framebuffer_qemu.go's pitch
// handling.
type HardwareSink struct {
	width, height int
	buf           unsafe.Pointer
	pitch         int
}

// NewHardwareSink requests a width x height 32bpp framebuffer from the GPU.
func NewHardwareSink(width, height int) (*HardwareSink, error) {
	req := &fbRequest{
		bufSize: uint32(unsafe.Sizeof(fbRequest{})),
		reqCode: 0,

		tagSetPhys: 0x48003,
		tagSize1:   8,
		tagCode1:   8,
		width:      uint32(width),
		height:     uint32(height),

		tagSetVirt: 0x48004,
		tagSize2:   8,
		tagCode2:   8,
		vWidth:     uint32(width),
		vHeight:    uint32(height),

		tagSetDepth: 0x48005,
		tagSize3:    4,
		tagCode3:    4,
		depth:       32,

		tagAlloc: 0x40001,
		tagSize4: 8,
		tagCode4: 8,
		bufPtr:   16, // align
		bufLen:   0,

		endTag: 0,
	}

	addr := uint32(uintptr(unsafe.Pointer(req)))
	mailboxSend(addr, propertyChannel)
	resp := mailboxRecv(propertyChannel)
	_ = resp

	sink := &HardwareSink{
		width:  int(req.width),
		height: int(req.height),
		buf:    unsafe.Pointer(uintptr(req.bufPtr &^ 0xC0000000)),
		pitch:  int(req.width) * 4,
	}
	return sink, nil
}

func mailboxSend(message, channel uint32) {
	for mmio.Read32(mailboxStatus)&mailboxFull != 0 {
	}
	mmio.Write32(mailboxWrite, (message&^0xF)|channel)
}

func mailboxRecv(channel uint32) uint32 {
	for {
		for mmio.Read32(mailboxStatus)&mailboxEmpty != 0 {
		}
		data := mmio.Read32(mailboxRead)
		if data&0xF == channel {
			return data &^ 0xF
		}
	}
}

func (s *HardwareSink) Width() int  { return s.width }
func (s *HardwareSink) Height() int { return s.height }

// Blit copies the RGBA backbuffer into the VideoCore framebuffer, which is
// BGRX8888 in memory (matching gg_circle_qemu.go's flushGGToFramebuffer
// channel swap).
func (s *HardwareSink) Blit(img *image.RGBA) {
	if s.buf == nil {
		return
	}
	width, height := s.width, s.height
	if width > img.Bounds().Dx() {
		width = img.Bounds().Dx()
	}
	if height > img.Bounds().Dy() {
		height = img.Bounds().Dy()
	}

	dst := unsafe.Slice((*uint8)(s.buf), s.pitch*height)
	for y := 0; y < height; y++ {
		srcRow := img.Pix[y*img.Stride:]
		dstRow := dst[y*s.pitch:]
		for x := 0; x < width; x++ {
			si := x * 4
			r, g, b := srcRow[si+0], srcRow[si+1], srcRow[si+2]
			dstRow[si+0] = b
			dstRow[si+1] = g
			dstRow[si+2] = r
			dstRow[si+3] = 0
		}
	}
}
