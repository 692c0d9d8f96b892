//go:build aarch64 && !raspi3

package main

import "mazarin/internal/platform"

// boardConfig selects the `qemu-system-aarch64 -M virt` layout: no
// VideoCore mailbox, so there is nothing for splashInit to do.
func boardConfig() platform.Config {
	return platform.QEMUVirt()
}

func splashInit(hw Hardware) {}
