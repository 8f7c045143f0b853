// SPDX-License-Identifier: EPL-2.0

package pcmix

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ik5/pcmix/audio"
	"github.com/ik5/pcmix/formats/aiff"
	"github.com/ik5/pcmix/formats/wav"
	"github.com/ik5/pcmix/mixer"
)

// loadBufferSamples is the read size used while converting.
const loadBufferSamples = 2 * mixer.BlockFrames

// Decoders maps file extensions, without the dot, to decoders. Load and
// LoadReader look formats up here; register more to extend them.
var Decoders = defaultDecoders()

func defaultDecoders() *audio.Registry {
	r := audio.NewRegistry()
	r.Register("wav", wav.Decoder{})
	r.Register("wave", wav.Decoder{})
	r.Register("aif", aiff.Decoder{})
	r.Register("aiff", aiff.Decoder{})

	return r
}

// Load decodes the file at path into an asset ready to play. The decoder is
// chosen by extension.
func Load(path string) (*mixer.Asset, error) {
	format := strings.TrimPrefix(filepath.Ext(path), ".")
	dec, ok := Decoders.Get(format)
	if !ok {
		return nil, &LoadError{Path: path, Err: fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)}
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	defer f.Close()

	a, err := decode(filepath.Base(path), dec, f)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}

	return a, nil
}

// LoadReader is Load for data already in memory or on the wire. format is a
// registered extension such as "wav".
func LoadReader(r io.Reader, format string) (*mixer.Asset, error) {
	dec, ok := Decoders.Get(format)
	if !ok {
		return nil, &LoadError{Err: fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)}
	}

	a, err := decode(format, dec, r)
	if err != nil {
		return nil, &LoadError{Err: err}
	}

	return a, nil
}

// LoadSource converts an already open source. It reads src to the end but
// does not close it.
func LoadSource(name string, src audio.Source) (*mixer.Asset, error) {
	a, err := convert(name, src)
	if err != nil {
		return nil, &LoadError{Path: name, Err: err}
	}

	return a, nil
}

func decode(name string, dec audio.Decoder, r io.Reader) (*mixer.Asset, error) {
	src, err := dec.Decode(r)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	return convert(name, src)
}

func convert(name string, src audio.Source) (*mixer.Asset, error) {
	origin := mixer.Format{
		Encoding:   mixer.EncodingLinear,
		SampleRate: src.SampleRate(),
		Channels:   src.Channels(),
	}

	samples, err := audio.ConvertToStereo16(src, mixer.SampleRate, loadBufferSamples)
	if err != nil {
		return nil, err
	}

	return mixer.NewAssetFromSamples(name, samples, origin)
}
