// SPDX-License-Identifier: EPL-2.0

package device

import (
	"bytes"
	"encoding/binary"
	"errors"
	"log"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ik5/pcmix/mixer"
)

func testAsset(t testing.TB, sample int16, frames int) *mixer.Asset {
	t.Helper()

	samples := make([]int16, frames*mixer.Channels)
	for i := range samples {
		samples[i] = sample
	}

	a, err := mixer.NewAssetFromSamples("test", samples, mixer.OutputFormat)
	require.NoError(t, err)

	return a
}

func openManual(t testing.TB, cfg Config) (*Device, *Manual) {
	t.Helper()

	backend := NewManual()
	sys, err := Init(backend)
	require.NoError(t, err)
	t.Cleanup(func() { _ = sys.Quit() })

	if cfg.Logger == nil {
		cfg.Logger = log.New(&bytes.Buffer{}, "", 0)
	}

	d, err := Open(sys, cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = d.Close() })

	return d, backend
}

func TestInit(t *testing.T) {
	t.Parallel()

	_, err := Init(nil)
	assert.ErrorIs(t, err, ErrNoBackend)

	boom := errors.New("no sound server")
	_, err = Init(&Manual{FailInit: boom})
	assert.ErrorIs(t, err, boom)

	sys, err := Init(NewManual())
	require.NoError(t, err)
	assert.True(t, sys.WasInit())
	assert.Equal(t, "manual", sys.Backend().Name())

	require.NoError(t, sys.Quit())
	assert.False(t, sys.WasInit())
	require.NoError(t, sys.Quit())
}

func TestOpen_RequiresSubsystem(t *testing.T) {
	t.Parallel()

	d, err := Open(nil, Config{})
	assert.ErrorIs(t, err, ErrSubsystemNotInitialized)
	assert.Nil(t, d)

	sys, err := Init(NewManual())
	require.NoError(t, err)
	require.NoError(t, sys.Quit())

	d, err = Open(sys, Config{})
	assert.ErrorIs(t, err, ErrSubsystemNotInitialized)
	assert.Nil(t, d)
}

func TestOpen_StartsStream(t *testing.T) {
	t.Parallel()

	d, backend := openManual(t, Config{})

	assert.True(t, d.Enabled())
	assert.Nil(t, d.Warning())
	assert.Equal(t, DefaultSpec(), d.Spec())
	assert.Equal(t, mixer.BlockBytes, d.Spec().BlockBytes())
	require.NotNil(t, backend.Stream())
	assert.True(t, backend.Stream().Started())
}

func TestOpen_DegradedWhenBackendFails(t *testing.T) {
	t.Parallel()

	var logs bytes.Buffer
	sys, err := Init(&Manual{FailOpen: errors.New("no such device")})
	require.NoError(t, err)

	d, err := Open(sys, Config{Logger: log.New(&logs, "", 0)})
	require.NoError(t, err)
	require.NotNil(t, d)

	assert.False(t, d.Enabled())
	require.NotNil(t, d.Warning())
	assert.Equal(t, "manual", d.Warning().Backend)
	assert.Contains(t, logs.String(), "Warning: failed to open audio device: no such device")

	var warn *OpenWarning
	require.ErrorAs(t, d.Warning(), &warn)
	assert.EqualError(t, warn.Unwrap(), "no such device")

	assert.NoError(t, d.Play(testAsset(t, 1, 8), 1, true))
	assert.Zero(t, d.Len())
	assert.ErrorIs(t, d.Play(nil, 1, false), mixer.ErrNilAsset)

	require.NoError(t, d.Close())
}

func TestDevice_PlayMixesOnTick(t *testing.T) {
	t.Parallel()

	d, backend := openManual(t, Config{})
	a := testAsset(t, 1000, 100)

	require.NoError(t, d.Play(a, 0.5, false))
	require.NoError(t, d.Play(a, 0.5, false))
	assert.Equal(t, 2, d.Len())

	block := backend.Stream().Tick()
	require.Len(t, block, mixer.BlockBytes)

	assert.Equal(t, int16(1000), int16(binary.LittleEndian.Uint16(block)))
	assert.Zero(t, int16(binary.LittleEndian.Uint16(block[100*mixer.FrameBytes:])))
	assert.Zero(t, d.Len())
}

func TestDevice_MaxVoices(t *testing.T) {
	t.Parallel()

	d, _ := openManual(t, Config{MaxVoices: 1})
	a := testAsset(t, 1, 8)

	require.NoError(t, d.Play(a, 1, true))
	assert.ErrorIs(t, d.Play(a, 1, true), mixer.ErrQueueFull)
}

func TestDevice_FadeOut(t *testing.T) {
	t.Parallel()

	d, backend := openManual(t, Config{})
	music := testAsset(t, 100, 1<<15)
	sfx := testAsset(t, 100, 1<<15)

	require.NoError(t, d.Play(music, 0.5, true))
	require.NoError(t, d.Play(sfx, 1, true))

	assert.Equal(t, 1, d.FadeOut(music))
	backend.Stream().TickN(63)
	require.Equal(t, 2, d.Len())

	backend.Stream().Tick()
	voices := d.Voices()
	require.Len(t, voices, 1)
	assert.Same(t, sfx, voices[0].Asset)

	assert.Equal(t, 1, d.FadeOutAll())
}

func TestDevice_Unload(t *testing.T) {
	t.Parallel()

	d, backend := openManual(t, Config{})
	a := testAsset(t, 1, mixer.BlockFrames+1)

	require.NoError(t, d.Play(a, 1, false))
	d.Unload(a)
	assert.ErrorIs(t, d.Play(a, 1, false), mixer.ErrAssetUnloaded)
	assert.False(t, a.Released())

	backend.Stream().TickN(2)
	assert.True(t, a.Released())
}

func TestDevice_CloseDrains(t *testing.T) {
	t.Parallel()

	d, backend := openManual(t, Config{})
	a := testAsset(t, 1, 8)
	b := testAsset(t, 1, 8)

	require.NoError(t, d.Play(a, 1, true))
	require.NoError(t, d.Play(b, 1, true))
	d.Unload(a)

	require.NoError(t, d.Close())
	assert.Zero(t, d.Len())
	assert.False(t, d.Enabled())
	assert.True(t, backend.Stream().Closed())
	assert.True(t, a.Released())
	assert.False(t, b.Released())
	assert.Nil(t, backend.Stream().Tick())

	assert.ErrorIs(t, d.Play(b, 1, false), ErrDeviceClosed)
	assert.NoError(t, d.Close())
}

func TestDevice_ConcurrentPlay(t *testing.T) {
	t.Parallel()

	d, backend := openManual(t, Config{})
	a := testAsset(t, 10, 64)

	const (
		producers = 8
		plays     = 50
	)

	var wg sync.WaitGroup
	for range producers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range plays {
				assert.NoError(t, d.Play(a, 0.1, false))
			}
		}()
	}

	done := make(chan struct{})
	ticked := make(chan struct{})
	go func() {
		defer close(ticked)
		out := make([]byte, 256)
		for {
			select {
			case <-done:
				return
			default:
				backend.Stream().TickInto(out)
			}
		}
	}()

	wg.Wait()
	close(done)
	<-ticked

	// Every voice is 256 bytes, so one more tick clears whatever is left.
	backend.Stream().TickInto(make([]byte, 256))
	assert.Zero(t, d.Len())
}

func TestSpec_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "s16le 44100Hz 2ch 4096 frames", DefaultSpec().String())
}
