// SPDX-License-Identifier: EPL-2.0

package pcmix

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ik5/pcmix/device"
	"github.com/ik5/pcmix/formats/wav"
	"github.com/ik5/pcmix/internal/audiotest"
	"github.com/ik5/pcmix/mixer"
)

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o600))

	return path
}

func manualDevice(t *testing.T) (*device.Device, *device.ManualStream) {
	t.Helper()

	backend := device.NewManual()
	sys, err := device.Init(backend)
	require.NoError(t, err)
	t.Cleanup(func() { _ = sys.Quit() })

	d, err := device.Open(sys, device.Config{Logger: log.New(&bytes.Buffer{}, "", 0)})
	require.NoError(t, err)
	t.Cleanup(func() { _ = d.Close() })

	return d, backend.Stream()
}

func TestLoad_PCM16IsExact(t *testing.T) {
	t.Parallel()

	samples := audiotest.Ramp(2*300, -300)
	path := writeFile(t, "ramp.wav", audiotest.WAV16(mixer.SampleRate, 2, samples))

	a, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "ramp.wav", a.Name())
	assert.Equal(t, 300, a.Frames())
	assert.Equal(t, mixer.Format{Encoding: mixer.EncodingLinear, SampleRate: 44100, Channels: 2}, a.Origin())
	assert.Equal(t, mixer.OutputFormat, a.Format())

	d, stream := manualDevice(t)
	require.NoError(t, Play(d, a, 1, false))

	block := stream.Tick()
	for i, want := range samples {
		require.Equal(t, want, int16(binary.LittleEndian.Uint16(block[2*i:])), "sample %d", i)
	}
}

func TestLoad_MonoIsDuplicated(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "mono.WAV", audiotest.WAV16(mixer.SampleRate, 1, []int16{100, -200, 300}))

	a, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 3, a.Frames())

	d, stream := manualDevice(t)
	require.NoError(t, d.Play(a, 1, false))

	block := stream.Tick()
	want := []int16{100, 100, -200, -200, 300, 300}
	for i, w := range want {
		assert.Equal(t, w, int16(binary.LittleEndian.Uint16(block[2*i:])), "sample %d", i)
	}
}

func TestLoad_Resamples(t *testing.T) {
	t.Parallel()

	const frames = 1000
	path := writeFile(t, "low.wave", audiotest.WAV16(22050, 1, make([]int16, frames)))

	a, err := Load(path)
	require.NoError(t, err)
	assert.InDelta(t, 2*frames, a.Frames(), 4)
	assert.Equal(t, 22050, a.Origin().SampleRate)
	assert.Equal(t, 1, a.Origin().Channels)
}

func TestLoad_Errors(t *testing.T) {
	t.Parallel()

	garbage := writeFile(t, "noise.wav", []byte(strings.Repeat("not a riff file ", 8)))
	float := writeFile(t, "float.wav", audiotest.WAVWithFormat(3, 44100, 1, 32, make([]byte, 16)))
	missing := filepath.Join(t.TempDir(), "missing.wav")

	tests := []struct {
		name string
		path string
		want error
	}{
		{name: "missing file", path: missing, want: fs.ErrNotExist},
		{name: "not a wav", path: garbage, want: wav.ErrNotWavFile},
		{name: "float samples", path: float, want: wav.ErrUnsupportedEncoding},
		{name: "unknown extension", path: "song.mp3", want: ErrUnsupportedFormat},
		{name: "no extension", path: "song", want: ErrUnsupportedFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			a, err := Load(tt.path)
			assert.Nil(t, a)
			require.ErrorIs(t, err, ErrLoad)
			assert.ErrorIs(t, err, tt.want)
			assert.True(t, strings.HasPrefix(err.Error(), "failed to open wave file: "+tt.path+": "), err.Error())

			var le *LoadError
			require.ErrorAs(t, err, &le)
			assert.Equal(t, tt.path, le.Path)
		})
	}
}

func TestLoadReader(t *testing.T) {
	t.Parallel()

	data := audiotest.WAV16(mixer.SampleRate, 2, []int16{1, 2, 3, 4})

	a, err := LoadReader(bytes.NewReader(data), "WAV")
	require.NoError(t, err)
	assert.Equal(t, 2, a.Frames())

	_, err = LoadReader(bytes.NewReader(data), "flac")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
	assert.ErrorIs(t, err, ErrLoad)
	assert.EqualError(t, err, `failed to open wave file: unsupported audio format: "flac"`)
}

func TestLoadSource(t *testing.T) {
	t.Parallel()

	src := audiotest.NewPCM16Source(mixer.SampleRate, 2, []int16{10, 20, 30, 40})

	a, err := LoadSource("generated", src)
	require.NoError(t, err)
	assert.Equal(t, "generated", a.Name())
	assert.Equal(t, 2, a.Frames())
	assert.False(t, src.Closed(), "LoadSource leaves the source open")

	_, err = LoadSource("empty", audiotest.NewSilentSource(mixer.SampleRate, 2, 0))
	assert.ErrorIs(t, err, mixer.ErrEmptyAsset)
	assert.ErrorIs(t, err, ErrLoad)
}

func TestLoadError_Format(t *testing.T) {
	t.Parallel()

	err := &LoadError{Path: "a.wav", Err: errors.New("bad chunk")}
	assert.EqualError(t, err, "failed to open wave file: a.wav: bad chunk")
	assert.NotErrorIs(t, err, ErrUnsupportedFormat)
}

func TestDecoders_Formats(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"aif", "aiff", "wav", "wave"}, Decoders.Formats())
}

func TestPlay_NilDevice(t *testing.T) {
	t.Parallel()

	assert.ErrorIs(t, Play(nil, nil, 1, false), ErrNoDevice)
}

func TestOpenDevice(t *testing.T) {
	t.Parallel()

	_, err := OpenDevice(nil)
	assert.ErrorIs(t, err, device.ErrSubsystemNotInitialized)

	sys, err := device.Init(device.NewManual())
	require.NoError(t, err)
	defer sys.Quit()

	d, err := OpenDevice(sys)
	require.NoError(t, err)
	defer d.Close()
	assert.True(t, d.Enabled())
}
