// SPDX-License-Identifier: EPL-2.0

package audio

import "fmt"

// StereoMixer presents any source as two interleaved channels. Mono is
// duplicated to both sides, stereo passes through and anything wider is
// first averaged by a MonoMixer.
type StereoMixer struct {
	src Source
	tmp []float32
}

func NewStereoMixer(src Source) *StereoMixer {
	if src.Channels() > 2 {
		src = NewMonoMixer(src)
	}

	return &StereoMixer{src: src}
}

func (s *StereoMixer) SampleRate() int { return s.src.SampleRate() }
func (s *StereoMixer) Channels() int   { return 2 }
func (s *StereoMixer) BufSize() int    { return s.src.BufSize() }

func (s *StereoMixer) Close() error {
	if err := s.src.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}

func (s *StereoMixer) ReadSamples(dst []float32) (int, error) {
	if len(dst)%2 != 0 {
		return 0, ErrInvalidDstSize
	}
	if len(dst) == 0 {
		return 0, nil
	}

	switch s.src.Channels() {
	case 2:
		return s.src.ReadSamples(dst)
	case 1:
	default:
		return 0, ErrInvalidChannels
	}

	frames := len(dst) / 2
	if cap(s.tmp) < frames {
		s.tmp = make([]float32, frames)
	}
	s.tmp = s.tmp[:frames]

	n, err := s.src.ReadSamples(s.tmp)
	for i := range n {
		dst[2*i] = s.tmp[i]
		dst[2*i+1] = s.tmp[i]
	}

	return 2 * n, err
}
