package splash

import (
	"image"
	"testing"
)

type fakeSink struct {
	w, h int
	last *image.RGBA
}

func (f *fakeSink) Width() int  { return f.w }
func (f *fakeSink) Height() int { return f.h }
func (f *fakeSink) Blit(img *image.RGBA) { f.last = img }

func TestBannerFlushesToSink(t *testing.T) {
	sink := &fakeSink{w: 320, h: 240}
	s, err := New(sink, nil)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	s.Banner("mazarin", "booting")
	if sink.last == nil {
		t.Fatal("Banner did not flush to the sink")
	}
	if sink.last.Bounds().Dx() != 320 || sink.last.Bounds().Dy() != 240 {
		t.Errorf("flushed image size = %v, want 320x240", sink.last.Bounds())
	}
}

func TestProcessTableFlushesToSink(t *testing.T) {
	sink := &fakeSink{w: 320, h: 240}
	s, err := New(sink, nil)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	s.ProcessTable([]ProcessRow{{PID: 0, State: "Ready"}, {PID: 1, State: "Waiting"}})
	if sink.last == nil {
		t.Fatal("ProcessTable did not flush to the sink")
	}
}

func TestFormatRowPadsPID(t *testing.T) {
	got := formatRow(ProcessRow{PID: 3, State: "Ready"})
	want := "3     Ready"
	if got != want {
		t.Errorf("formatRow = %q, want %q", got, want)
	}
}

func TestItoaZero(t *testing.T) {
	if itoa(0) != "0" {
		t.Errorf("itoa(0) = %q, want 0", itoa(0))
	}
}

func TestItoaMultiDigit(t *testing.T) {
	if itoa(1234) != "1234" {
		t.Errorf("itoa(1234) = %q, want 1234", itoa(1234))
	}
}
