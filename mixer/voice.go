// SPDX-License-Identifier: EPL-2.0

package mixer

import "math"

// Voice is one playback of an Asset. It lives inside a PlaybackQueue node
// and is never shared.
//
// cursor + remaining == len(buf) holds between ticks.
type Voice struct {
	asset     *Asset
	buf       []byte
	cursor    int
	remaining int
	volume    int

	loop       bool
	fading     bool
	ownsBuffer bool
}

func newVoice(a *Asset, volume int, loop bool) Voice {
	buf := a.buffer()

	return Voice{
		asset:     a,
		buf:       buf,
		remaining: len(buf),
		volume:    volume,
		loop:      loop,
	}
}

func (v *Voice) rewind() {
	v.cursor = 0
	v.remaining = len(v.buf)
}

// sanitize forces an inconsistent voice to be exhausted rather than read out
// of bounds.
func (v *Voice) sanitize() {
	if v.remaining < 0 || v.cursor < 0 || v.cursor+v.remaining != len(v.buf) {
		v.cursor = len(v.buf)
		v.remaining = 0
	}
	if v.volume < 0 {
		v.volume = 0
	} else if v.volume > MaxVolume {
		v.volume = MaxVolume
	}
}

// VolumeFromFloat maps [0, 1] onto [0, MaxVolume], rounding to nearest.
// Out of range values clamp and NaN is silent.
func VolumeFromFloat(f float64) int {
	switch {
	case math.IsNaN(f), f <= 0:
		return 0
	case f >= 1:
		return MaxVolume
	}

	return int(math.Round(MaxVolume * f))
}

// VoiceState is a snapshot of a queued voice.
type VoiceState struct {
	Asset      *Asset
	Position   int // bytes already mixed in the current pass
	Remaining  int
	Volume     int
	Loop       bool
	Fading     bool
	OwnsBuffer bool
}

func (v *Voice) state() VoiceState {
	return VoiceState{
		Asset:      v.asset,
		Position:   v.cursor,
		Remaining:  v.remaining,
		Volume:     v.volume,
		Loop:       v.loop,
		Fading:     v.fading,
		OwnsBuffer: v.ownsBuffer,
	}
}
