// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"

	"github.com/ik5/pcmix/utils"
)

// maxIdleReads bounds how many consecutive empty, error-free reads are
// tolerated before a source is considered stuck.
const maxIdleReads = 64

// ConvertToStereo16 drains src into interleaved stereo int16 samples at
// targetRate.
//
// The pipeline is: resample (only when the rates differ) -> StereoMixer ->
// int16. 16-bit input at the target rate converts bit-exactly.
//
// bufferSize is the read size in samples; it is rounded down to an even
// number and defaults to 4096 when not positive.
func ConvertToStereo16(src Source, targetRate int, bufferSize int) ([]int16, error) {
	if targetRate <= 0 || src.SampleRate() <= 0 {
		return nil, ErrInvalidRate
	}
	if src.Channels() < 1 {
		return nil, ErrInvalidChannels
	}

	bufferSize &^= 1
	if bufferSize <= 0 {
		bufferSize = 4096
	}

	var pipeline Source = src
	if src.SampleRate() != targetRate {
		pipeline = NewResampler(pipeline, targetRate)
	}
	pipeline = NewStereoMixer(pipeline)

	out := make([]int16, 0, bufferSize)
	buf := make([]float32, bufferSize)
	idle := 0

	for {
		n, err := pipeline.ReadSamples(buf)
		for _, v := range buf[:n] {
			out = append(out, utils.Float32ToPCM16(v))
		}

		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("converting to stereo 16-bit: %w", err)
		}

		if n == 0 {
			idle++
			if idle > maxIdleReads {
				return nil, io.ErrNoProgress
			}
			continue
		}
		idle = 0
	}

	return out, nil
}
