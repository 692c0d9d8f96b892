//go:build aarch64 && raspi3

package main

import (
	"mazarin/internal/klog"
	"mazarin/internal/platform"
	"mazarin/internal/splash"
)

// boardConfig selects the real Raspberry Pi 3 layout.
func boardConfig() platform.Config {
	return platform.RaspberryPi3()
}

// splashInit draws the one-shot boot banner to the VideoCore framebuffer.
// Nothing currently refreshes ProcessTable after this; wiring a periodic
// redraw would mean threading a Screen through the timer tick handler,
// which sched.GlobalScheduler.tick does not expose a hook for yet.
func splashInit(hw Hardware) {
	sink, err := splash.NewHardwareSink(800, 480)
	if err != nil {
		klog.Puts(hw.Console, "mazarin: framebuffer init failed: ")
		klog.Putln(hw.Console, err.Error())
		return
	}
	screen, err := splash.New(sink, nil)
	if err != nil {
		klog.Puts(hw.Console, "mazarin: splash init failed: ")
		klog.Putln(hw.Console, err.Error())
		return
	}
	screen.Banner("mazarin", "booting on "+hw.Config.Name)
}
