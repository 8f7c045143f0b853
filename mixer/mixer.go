// SPDX-License-Identifier: EPL-2.0

package mixer

// Mixer owns a PlaybackQueue and renders it one block at a time.
//
// Mixer does no locking. Every method, Mix included, must be called with the
// owning device's lock held; the device takes that lock around each tick.
type Mixer struct {
	queue     *PlaybackQueue
	maxVoices int
}

// NewMixer creates a mixer. maxVoices caps the queue length; 0 means no cap.
func NewMixer(maxVoices int) *Mixer {
	return &Mixer{
		queue:     NewPlaybackQueue(max(maxVoices, 16)),
		maxVoices: max(maxVoices, 0),
	}
}

// Len is the number of queued voices.
func (m *Mixer) Len() int { return m.queue.Len() }

// Play appends a new voice for a at the tail of the queue. volume is in
// [0, 1] and is converted with VolumeFromFloat.
func (m *Mixer) Play(a *Asset, volume float64, loop bool) error {
	if a == nil {
		return ErrNilAsset
	}
	if a.Unloaded() {
		return ErrAssetUnloaded
	}
	if m.maxVoices > 0 && m.queue.Len() >= m.maxVoices {
		return ErrQueueFull
	}

	v := newVoice(a, VolumeFromFloat(volume), loop)
	if len(v.buf) == 0 {
		return ErrEmptyAsset
	}

	a.refs.Add(1)
	m.queue.push(v)

	return nil
}

// Mix renders one tick into out.
//
// out is cleared, then every queued voice is visited in order:
//
//   - a looping voice that is fading loses one volume step; once its volume
//     is 0 it is exhausted, and from that point in the walk every looping,
//     non-fading voice is ducked (mixes nothing this tick);
//   - any other voice mixes min(len(out), remaining) bytes at its volume;
//   - a voice left with nothing to play restarts if it loops and has
//     volume left, and is removed otherwise.
//
// Mix never allocates and never fails.
func (m *Mixer) Mix(out []byte) {
	clear(out)

	if m == nil || m.queue == nil {
		return
	}

	q := m.queue
	ducking := false
	prev := sentinel

	for cur := q.first(); cur != none; {
		v := q.voice(cur)
		v.sanitize()

		if v.remaining > 0 {
			if v.fading && v.loop {
				ducking = true
				if v.volume > 0 {
					v.volume--
				}
				if v.volume == 0 {
					v.remaining = 0
				}
			}

			n := 0
			if !ducking || !v.loop || v.fading {
				n = min(len(out), v.remaining)
				n -= n % FrameBytes
			}

			if n > 0 {
				MixS16(out[:n], v.buf[v.cursor:v.cursor+n], v.volume)
				v.cursor += n
				v.remaining -= n
			}
		}

		if v.remaining == 0 {
			if v.loop && (!v.fading || v.volume > 0) {
				v.rewind()
			} else {
				m.drop(v)
				cur = q.unlink(prev, cur)
				continue
			}
		}

		prev = cur
		cur = q.next(cur)
	}
}

// drop releases the voice's hold on its asset. The buffer goes away with
// the last voice of an unloaded asset.
func (m *Mixer) drop(v *Voice) {
	a := v.asset
	v.asset = nil
	v.buf = nil
	if a == nil {
		return
	}

	left := a.refs.Add(-1)
	if left <= 0 && (v.ownsBuffer || a.Unloaded()) {
		a.release()
	}
}

// FadeOut starts fading every looping voice cloned from a and reports how
// many it touched. Non-looping voices are left alone; they end on their own.
func (m *Mixer) FadeOut(a *Asset) int {
	return m.fade(func(v *Voice) bool { return v.asset == a })
}

// FadeOutAll starts fading every looping voice.
func (m *Mixer) FadeOutAll() int {
	return m.fade(func(*Voice) bool { return true })
}

func (m *Mixer) fade(match func(*Voice) bool) int {
	count := 0
	m.queue.each(func(v *Voice) bool {
		if v.loop && !v.fading && match(v) {
			v.fading = true
			count++
		}
		return true
	})

	return count
}

// Unload retires a. Later Play calls fail with ErrAssetUnloaded. The sample
// buffer is dropped now if no voice uses it, otherwise when the last of its
// voices is removed.
func (m *Mixer) Unload(a *Asset) {
	if a == nil || !a.unloaded.CompareAndSwap(false, true) {
		return
	}

	if a.refs.Load() == 0 {
		a.release()
		return
	}

	m.queue.each(func(v *Voice) bool {
		if v.asset == a {
			v.ownsBuffer = true
		}
		return true
	})
}

// Reset removes every voice.
func (m *Mixer) Reset() {
	q := m.queue
	for cur := q.first(); cur != none; {
		m.drop(q.voice(cur))
		cur = q.unlink(sentinel, cur)
	}
}

// Voices snapshots the queue in play order.
func (m *Mixer) Voices() []VoiceState {
	out := make([]VoiceState, 0, m.queue.Len())
	m.queue.each(func(v *Voice) bool {
		out = append(out, v.state())
		return true
	})

	return out
}
