// Package splash renders the boot banner and a live process-table overlay
// onto the VideoCore framebuffer, next to (not instead of) the UART
// console. Grounded on gg_circle_qemu.go and framebuffer_text.go, which
// draw with github.com/fogleman/gg into an RGBA backbuffer and then flush
// it into the hardware framebuffer; this package keeps that split but
// drives the drawing side from gg/freetype/basicfont instead of the
// teacher's hand-rolled 8x8 font bitmap.
package splash

import (
	"image"
	"image/color"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

// Sink is the hardware framebuffer the rendered backbuffer is flushed to.
// Implemented by the raspi3 build's VideoCore mailbox driver.
type Sink interface {
	Width() int
	Height() int
	Blit(img *image.RGBA)
}

// ProcessRow is one line of the live process-table overlay.
type ProcessRow struct {
	PID   uint64
	State string
}

var (
	bannerColor = color.RGBA{R: 0x00, G: 0xE0, B: 0x40, A: 0xFF}
	tableColor  = color.RGBA{R: 0xE0, G: 0xE0, B: 0xE0, A: 0xFF}
	bgColor     = color.RGBA{R: 0x10, G: 0x10, B: 0x28, A: 0xFF}
)

// Screen owns the gg drawing context and the font face it draws text with.
type Screen struct {
	sink Sink
	ctx  *gg.Context
	face font.Face
}

// New builds a Screen sized to the sink's reported dimensions. ttf, if
// non-nil, is parsed with freetype and used as the text face; otherwise the
// fallback is golang.org/x/image/font/basicfont.Face7x13, matching the
// spec's "fallback bitmap face when no TTF is loaded".
func New(sink Sink, ttf []byte) (*Screen, error) {
	w, h := sink.Width(), sink.Height()
	ctx := gg.NewContext(w, h)

	face, err := loadFace(ttf)
	if err != nil {
		return nil, err
	}
	ctx.SetFontFace(face)

	return &Screen{sink: sink, ctx: ctx, face: face}, nil
}

func loadFace(ttf []byte) (font.Face, error) {
	if len(ttf) == 0 {
		return basicfont.Face7x13, nil
	}
	parsed, err := truetype.Parse(ttf)
	if err != nil {
		return nil, err
	}
	return truetype.NewFace(parsed, &truetype.Options{Size: 14}), nil
}

// Banner draws the boot banner: a title line plus a one-line subtitle,
// centered at the top of the screen, then flushes it to the sink.
func (s *Screen) Banner(title, subtitle string) {
	s.ctx.SetColor(bgColor)
	s.ctx.Clear()

	s.ctx.SetColor(bannerColor)
	s.drawCentered(title, float64(s.ctx.Height())/3)
	s.ctx.SetColor(tableColor)
	s.drawCentered(subtitle, float64(s.ctx.Height())/3+24)

	s.flush()
}

func (s *Screen) drawCentered(text string, y float64) {
	s.ctx.DrawStringAnchored(text, float64(s.ctx.Width())/2, y, 0.5, 0.5)
}

// ProcessTable redraws the live process-table overlay in the lower half of
// the screen: one row per process, PID and state. It draws the rows it is
// given once; nothing in this module calls it on a scheduler tick.
func (s *Screen) ProcessTable(rows []ProcessRow) {
	top := float64(s.ctx.Height()) / 2
	height := float64(s.ctx.Height()) - top

	s.ctx.SetColor(bgColor)
	s.ctx.DrawRectangle(0, top, float64(s.ctx.Width()), height)
	s.ctx.Fill()

	s.ctx.SetColor(tableColor)
	lineHeight := 16.0
	y := top + lineHeight
	s.ctx.DrawString("PID   STATE", 8, y)
	for _, row := range rows {
		y += lineHeight
		if y > float64(s.ctx.Height())-4 {
			break
		}
		s.ctx.DrawString(formatRow(row), 8, y)
	}

	s.flush()
}

func formatRow(row ProcessRow) string {
	pid := itoa(row.PID)
	for len(pid) < 6 {
		pid += " "
	}
	return pid + row.State
}

func itoa(v uint64) string {
	if v == 0 {
		return "0"
	}
	var buf [20]byte
	i := len(buf)
	for v > 0 {
		i--
		buf[i] = byte('0' + v%10)
		v /= 10
	}
	return string(buf[i:])
}

func (s *Screen) flush() {
	img, ok := s.ctx.Image().(*image.RGBA)
	if !ok {
		return
	}
	s.sink.Blit(img)
}
