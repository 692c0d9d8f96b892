// Command bootloader is the kernel's stage-1 loader: it waits on the UART
// for an XMODEM-framed kernel image, and on a successful transfer branches
// straight into it. On any other error it blinks an onboard LED twice and
// tries again. Grounded on boot/src/main.rs.
package main

import (
	"io"
	"time"

	"mazarin/internal/xmodem"
)

// binaryStartAddr is where a transferred kernel image expects to be loaded,
// and bootloaderStartAddr is where stage-1 firmware loads this bootloader
// itself — the gap between them bounds how large a transfer can be.
const (
	binaryStartAddr     = 0x80000
	bootloaderStartAddr = 0x4000000
	maxBinarySize       = bootloaderStartAddr - binaryStartAddr

	packetTimeout  = 750 * time.Millisecond
	blinkHalfCycle = 75 * time.Millisecond
)

// LED is the onboard LED this bootloader blinks to signal a failed
// transfer. Implemented in the assembly/GPIO layer the teacher's
// pi.gpio.Gpio wraps.
type LED interface {
	Set()
	Clear()
}

// Jumper branches unconditionally into the freshly-loaded kernel image and
// never returns — a `br`-then-`wfe` sequence on real hardware, injected
// the same way internal/sched injects EnterUser.
type Jumper func(addr uintptr)

// Run repeatedly attempts an XMODEM transfer over uart (which must already
// be configured with a packetTimeout read deadline per packet, matching
// uart.set_read_timeout in the original) into a maxBinarySize buffer,
// jumping into the result on success. sleep is the spin-sleep primitive
// used between LED blinks; on a successful transfer jump never returns, so
// Run itself never returns either.
func Run(recv xmodem.Receiver, uart io.Reader, buf []byte, led LED, sleep func(time.Duration), jump Jumper) {
	for {
		_, err := recv.Receive(uart, buf)
		if err == nil {
			jump(binaryStartAddr)
			return
		}
		if xmodem.IsTimeout(err) {
			continue
		}
		for i := 0; i < 2; i++ {
			led.Set()
			sleep(blinkHalfCycle)
			led.Clear()
			sleep(blinkHalfCycle)
		}
	}
}

// main wires Run to real hardware. Left unimplemented here since the
// board-specific UART/GPIO/timer bring-up lives in cmd/kernel's platform
// selection; a real build tags in the hardware constructors and calls
// Run(realReceiver, realUART, make([]byte, maxBinarySize), realLED,
// realSleep, realJump).
func main() {}
