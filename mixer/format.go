// SPDX-License-Identifier: EPL-2.0

package mixer

import (
	"fmt"
	"time"
)

// Output format. None of these change at runtime.
const (
	SampleRate  = 44100
	Channels    = 2
	BitDepth    = 16
	FrameBytes  = Channels * BitDepth / 8
	BlockFrames = 4096
	BlockBytes  = BlockFrames * FrameBytes

	// MaxVolume is full scale; 0 is silent.
	MaxVolume = 128
)

// Encoding names a sample encoding.
type Encoding uint8

const (
	// EncodingLinear is decoded linear PCM of unspecified width, used to
	// describe where an asset came from.
	EncodingLinear Encoding = iota
	// EncodingS16LE is 16-bit signed little-endian PCM.
	EncodingS16LE
)

func (e Encoding) String() string {
	switch e {
	case EncodingLinear:
		return "linear"
	case EncodingS16LE:
		return "s16le"
	default:
		return fmt.Sprintf("encoding(%d)", uint8(e))
	}
}

// Format describes a PCM stream.
type Format struct {
	Encoding   Encoding
	SampleRate int
	Channels   int
}

// OutputFormat is the format of every asset and of the mixed stream.
var OutputFormat = Format{
	Encoding:   EncodingS16LE,
	SampleRate: SampleRate,
	Channels:   Channels,
}

func (f Format) String() string {
	return fmt.Sprintf("%s %dHz %dch", f.Encoding, f.SampleRate, f.Channels)
}

// BytesDuration converts a byte count in the output format to play time.
func BytesDuration(n int) time.Duration {
	frames := n / FrameBytes
	return time.Duration(frames) * time.Second / SampleRate
}

// TickDuration is the play time covered by one full block.
func TickDuration() time.Duration {
	return BytesDuration(BlockBytes)
}
