// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"

	"github.com/ik5/pcmix/utils"
)

// Resampler streams src at dstRate using cubic interpolation over a four
// frame window. It works on interleaved samples and preserves the channel
// count. A one-pole low-pass is applied to incoming frames when downsampling.
type Resampler struct {
	src      Source
	dstRate  int
	step     float64 // source frames consumed per output frame
	channels int

	// window holds frames t-1, t0, t+1, t+2; output is taken between
	// window[1] and window[2] at offset frac.
	window [4][]float32
	valid  [4]bool
	frac   float64
	primed bool

	frame []float32
	eof   bool

	lowpass     bool
	alpha       float32
	state       []float32
	statePrimed bool
}

func NewResampler(src Source, dstRate int) *Resampler {
	channels := src.Channels()
	step := 1.0
	if dstRate > 0 && src.SampleRate() > 0 {
		step = float64(src.SampleRate()) / float64(dstRate)
	}

	r := &Resampler{
		src:      src,
		dstRate:  dstRate,
		step:     step,
		channels: channels,
		frame:    make([]float32, max(channels, 0)),
		lowpass:  step > 1,
		alpha:    0.5,
		state:    make([]float32, max(channels, 0)),
	}
	for i := range r.window {
		r.window[i] = make([]float32, max(channels, 0))
	}

	return r
}

func (r *Resampler) SampleRate() int { return r.dstRate }
func (r *Resampler) Channels() int   { return r.channels }
func (r *Resampler) BufSize() int    { return r.src.BufSize() }

func (r *Resampler) Close() error {
	if err := r.src.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}

// pull reads the next source frame into dst. It reports false once the
// source is exhausted.
func (r *Resampler) pull(dst []float32) (bool, error) {
	if r.eof {
		return false, nil
	}

	n, err := r.src.ReadSamples(r.frame)
	if err != nil && err != io.EOF {
		return false, fmt.Errorf("%w", err)
	}
	if err == io.EOF || n < r.channels {
		r.eof = true
	}
	if n < r.channels {
		return false, nil
	}

	if r.lowpass {
		if !r.statePrimed {
			copy(r.state, r.frame)
			r.statePrimed = true
		}
		for c := range r.channels {
			r.state[c] = r.alpha*r.frame[c] + (1-r.alpha)*r.state[c]
			r.frame[c] = r.state[c]
		}
	}

	copy(dst, r.frame)
	return true, nil
}

func (r *Resampler) prime() error {
	r.primed = true

	ok, err := r.pull(r.window[1])
	if err != nil {
		return err
	}
	r.valid[1] = ok
	if !ok {
		return nil
	}

	// hold the first frame as its own predecessor
	copy(r.window[0], r.window[1])
	r.valid[0] = true

	for i := 2; i < len(r.window); i++ {
		ok, err := r.pull(r.window[i])
		if err != nil {
			return err
		}
		if !ok {
			copy(r.window[i], r.window[i-1])
		}
		r.valid[i] = ok
	}

	return nil
}

func (r *Resampler) advance() error {
	oldest := r.window[0]
	copy(r.window[:3], r.window[1:])
	copy(r.valid[:3], r.valid[1:])
	r.window[3] = oldest

	ok, err := r.pull(r.window[3])
	if err != nil {
		return err
	}
	if !ok {
		copy(r.window[3], r.window[2])
	}
	r.valid[3] = ok

	return nil
}

// ReadSamples produces samples at the destination rate. len(dst) must be a
// multiple of the channel count.
func (r *Resampler) ReadSamples(dst []float32) (int, error) {
	if r.channels < 1 {
		return 0, ErrInvalidChannels
	}
	if len(dst)%r.channels != 0 {
		return 0, ErrInvalidDstSize
	}

	if !r.primed {
		if err := r.prime(); err != nil {
			return 0, err
		}
	}

	written := 0
	for written+r.channels <= len(dst) {
		for r.frac >= 1 {
			r.frac--
			if err := r.advance(); err != nil {
				return written, err
			}
		}

		if !r.valid[1] {
			break
		}

		x := float32(r.frac)
		for c := range r.channels {
			dst[written+c] = utils.CubicInterpolate(
				r.window[0][c], r.window[1][c], r.window[2][c], r.window[3][c], x)
		}

		written += r.channels
		r.frac += r.step
	}

	if !r.valid[1] {
		return written, io.EOF
	}

	return written, nil
}
