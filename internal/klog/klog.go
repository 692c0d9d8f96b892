// Package klog is the kernel's diagnostic output path. It never imports fmt
// or log: every call writes bytes directly to a Writer, so it stays safe to
// call from inside exception handlers and other allocation-free contexts.
package klog

// Writer is satisfied by any backend capable of emitting a single byte.
// internal/console's UART driver implements it; host tests use an in-memory
// byte sink.
type Writer interface {
	WriteByte(b byte) error
}

var hexDigits = [16]byte{'0', '1', '2', '3', '4', '5', '6', '7', '8', '9', 'a', 'b', 'c', 'd', 'e', 'f'}

// Putc writes a single byte, translating '\n' to "\r\n" the way the UART
// console expects.
func Putc(w Writer, c byte) {
	if c == '\n' {
		_ = w.WriteByte('\r')
	}
	_ = w.WriteByte(c)
}

// Puts writes s byte by byte.
func Puts(w Writer, s string) {
	for i := 0; i < len(s); i++ {
		Putc(w, s[i])
	}
}

// Putln writes s followed by a newline.
func Putln(w Writer, s string) {
	Puts(w, s)
	Putc(w, '\n')
}

// PutUint64 writes v in decimal, with no leading zeros.
func PutUint64(w Writer, v uint64) {
	var buf [20]byte
	i := len(buf)
	if v == 0 {
		Putc(w, '0')
		return
	}
	for v > 0 {
		i--
		buf[i] = byte('0') + byte(v%10)
		v /= 10
	}
	for _, c := range buf[i:] {
		Putc(w, c)
	}
}

// PutHex64 writes v as a fixed-width 16-digit lowercase hex string prefixed
// with "0x", matching the uartPutHex64 style diagnostic helpers the kernel's
// assembly-adjacent code uses when fmt is unavailable.
func PutHex64(w Writer, v uint64) {
	Puts(w, "0x")
	for shift := 60; shift >= 0; shift -= 4 {
		Putc(w, hexDigits[(v>>uint(shift))&0xf])
	}
}

// PutHex32 is PutHex64 truncated to 8 digits.
func PutHex32(w Writer, v uint32) {
	Puts(w, "0x")
	for shift := 28; shift >= 0; shift -= 4 {
		Putc(w, hexDigits[(v>>uint(shift))&0xf])
	}
}

// Panic prints msg to w and panics, matching the "print syndrome and hang"
// policy for internal invariant violations: on real hardware there is no
// unwind target and nothing in cmd/kernel recovers the panic; on the host it
// behaves like an ordinary panic.
func Panic(w Writer, msg string) {
	Putln(w, msg)
	panic(msg)
}

// BufWriter is a Writer backed by an in-memory buffer, used by host tests
// that need to assert on what was logged without real hardware.
type BufWriter struct {
	Buf []byte
}

func (b *BufWriter) WriteByte(c byte) error {
	b.Buf = append(b.Buf, c)
	return nil
}

func (b *BufWriter) String() string {
	return string(b.Buf)
}
