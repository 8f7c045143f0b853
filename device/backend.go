// SPDX-License-Identifier: EPL-2.0

package device

import (
	"fmt"

	"github.com/ik5/pcmix/mixer"
)

// Spec describes an output stream.
type Spec struct {
	SampleRate int
	Channels   int
	Encoding   mixer.Encoding

	// Samples is the callback block size in frames.
	Samples int

	// AllowAnyChange lets the backend hand back a different spec than the
	// one requested.
	AllowAnyChange bool
}

// DefaultSpec is what every Device asks for.
func DefaultSpec() Spec {
	return Spec{
		SampleRate:     mixer.SampleRate,
		Channels:       mixer.Channels,
		Encoding:       mixer.EncodingS16LE,
		Samples:        mixer.BlockFrames,
		AllowAnyChange: true,
	}
}

// BlockBytes is the size of one callback buffer.
func (s Spec) BlockBytes() int {
	return s.Samples * s.Channels * 2
}

func (s Spec) String() string {
	return fmt.Sprintf("%s %dHz %dch %d frames", s.Encoding, s.SampleRate, s.Channels, s.Samples)
}

// FillFunc renders the next block of output into out. It is called from the
// backend's audio thread.
type FillFunc func(out []byte)

// Backend is an audio output library.
type Backend interface {
	Name() string

	// Init brings the library up. It is called once per Subsystem.
	Init() error

	// Open creates a paused stream that pulls its samples from fill, and
	// returns the spec actually obtained.
	Open(want Spec, fill FillFunc) (Stream, Spec, error)

	Quit() error
}

// Stream is an open output stream.
type Stream interface {
	// Start unpauses the stream.
	Start() error

	// Close stops the stream. Once Close returns, fill is not called again.
	Close() error
}
