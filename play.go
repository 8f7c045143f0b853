// SPDX-License-Identifier: EPL-2.0

package pcmix

import (
	"github.com/ik5/pcmix/device"
	"github.com/ik5/pcmix/mixer"
)

// OpenDevice opens the output on sys with the default configuration. See
// device.Open for the failure modes.
func OpenDevice(sys *device.Subsystem) (*device.Device, error) {
	return device.Open(sys, device.Config{})
}

// Play starts a on d at volume, from 0 to 1. A looping voice repeats until
// it is faded out.
func Play(d *device.Device, a *mixer.Asset, volume float64, loop bool) error {
	if d == nil {
		return ErrNoDevice
	}

	return d.Play(a, volume, loop)
}
