// Package console is the kernel's one byte-oriented I/O device: the PL011
// UART, grounded on lib/pi/src/uart.rs's MiniUart and the teacher's
// uart_qemu.go register layout. internal/klog writes diagnostics through
// it, internal/shell reads commands from it, and sys_write sends user
// output through it.
package console

// Console is a blocking-write, poll-for-read byte device. The three hooks
// are injected so this type stays host-testable; console_aarch64.go wires
// them to the real PL011 registers.
type Console struct {
	write     func(b byte)
	readReady func() bool
	read      func() byte
}

// New constructs a Console from its three register-level operations.
func New(write func(b byte), readReady func() bool, read func() byte) *Console {
	return &Console{write: write, readReady: readReady, read: read}
}

// WriteByte sends b, blocking until the transmit FIFO has room. It
// satisfies internal/klog.Writer and internal/syscall.Console.
func (c *Console) WriteByte(b byte) error {
	c.write(b)
	return nil
}

// ReadByte returns the next received byte, or ok=false if none is
// available yet — internal/shell polls this rather than blocking, so a
// Waiting process can still be preempted.
func (c *Console) ReadByte() (b byte, ok bool) {
	if !c.readReady() {
		return 0, false
	}
	return c.read(), true
}
