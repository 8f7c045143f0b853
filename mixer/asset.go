// SPDX-License-Identifier: EPL-2.0

package mixer

import (
	"encoding/binary"
	"sync/atomic"
	"time"
)

// Asset is a decoded sound in OutputFormat. Its samples never change after
// construction; any number of voices read them concurrently.
//
// The bookkeeping fields are atomics because an asset may be played on more
// than one device, each with its own lock.
type Asset struct {
	name   string
	origin Format
	length int

	pcm      atomic.Pointer[[]byte]
	refs     atomic.Int32
	unloaded atomic.Bool
	released atomic.Bool
}

// NewAsset wraps interleaved S16LE stereo bytes. The asset takes ownership of
// pcm; a trailing partial frame is dropped.
func NewAsset(name string, pcm []byte, origin Format) (*Asset, error) {
	n := len(pcm) - len(pcm)%FrameBytes
	if n == 0 {
		return nil, ErrEmptyAsset
	}

	a := &Asset{name: name, origin: origin, length: n}
	buf := pcm[:n:n]
	a.pcm.Store(&buf)

	return a, nil
}

// NewAssetFromSamples encodes interleaved stereo int16 samples.
func NewAssetFromSamples(name string, samples []int16, origin Format) (*Asset, error) {
	pcm := make([]byte, 2*len(samples))
	for i, s := range samples {
		binary.LittleEndian.PutUint16(pcm[2*i:], uint16(s))
	}

	return NewAsset(name, pcm, origin)
}

func (a *Asset) Name() string { return a.name }

// Len is the buffer length in bytes.
func (a *Asset) Len() int { return a.length }

func (a *Asset) Frames() int { return a.length / FrameBytes }

func (a *Asset) Duration() time.Duration { return BytesDuration(a.length) }

// Format is always OutputFormat.
func (a *Asset) Format() Format { return OutputFormat }

// Origin describes the file the asset was decoded from.
func (a *Asset) Origin() Format { return a.origin }

// Unloaded reports whether Unload was called on the asset.
func (a *Asset) Unloaded() bool { return a.unloaded.Load() }

// Released reports whether the sample buffer has been dropped.
func (a *Asset) Released() bool { return a.released.Load() }

// buffer returns the samples, or nil once released.
func (a *Asset) buffer() []byte {
	if p := a.pcm.Load(); p != nil {
		return *p
	}
	return nil
}

func (a *Asset) release() {
	if a.released.CompareAndSwap(false, true) {
		a.pcm.Store(nil)
	}
}
