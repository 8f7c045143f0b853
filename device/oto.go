// SPDX-License-Identifier: EPL-2.0

package device

import (
	"fmt"
	"io"
	"sync"
	"sync/atomic"

	"github.com/ebitengine/oto/v3"

	"github.com/ik5/pcmix/mixer"
)

// oto allows one context per process, so it is shared by every Oto backend.
var (
	otoMu   sync.Mutex
	otoCtx  *oto.Context
	otoSpec Spec
)

// Oto plays through ebitengine/oto. oto pulls samples from an io.Reader on
// its own goroutine; the reader renders each read through the mixer.
type Oto struct{}

func NewOto() *Oto { return &Oto{} }

func (*Oto) Name() string { return "oto" }

// Init is a no-op; the context is created by the first Open because its
// format is fixed at creation.
func (*Oto) Init() error { return nil }

func (*Oto) Open(want Spec, fill FillFunc) (Stream, Spec, error) {
	if want.Encoding != mixer.EncodingS16LE {
		return nil, Spec{}, fmt.Errorf("unsupported encoding: %v", want.Encoding)
	}

	otoMu.Lock()
	defer otoMu.Unlock()

	got := want
	switch {
	case otoCtx == nil:
		ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
			SampleRate:   want.SampleRate,
			ChannelCount: want.Channels,
			Format:       oto.FormatSignedInt16LE,
			BufferSize:   mixer.BytesDuration(want.BlockBytes()),
		})
		if err != nil {
			return nil, Spec{}, fmt.Errorf("failed to create oto context: %w", err)
		}
		<-ready

		otoCtx = ctx
		otoSpec = want
	case otoSpec.SampleRate != want.SampleRate || otoSpec.Channels != want.Channels:
		if !want.AllowAnyChange {
			return nil, Spec{}, fmt.Errorf("oto context already running at %v", otoSpec)
		}
		got = otoSpec
	}

	if err := otoCtx.Resume(); err != nil {
		return nil, Spec{}, fmt.Errorf("failed to resume oto context: %w", err)
	}

	r := &callbackReader{fill: fill, frame: got.Channels * 2}
	return &otoStream{player: otoCtx.NewPlayer(r), reader: r}, got, nil
}

// Quit suspends the shared context. oto cannot destroy it.
func (*Oto) Quit() error {
	otoMu.Lock()
	defer otoMu.Unlock()

	if otoCtx == nil {
		return nil
	}

	return otoCtx.Suspend()
}

// callbackReader turns each Read into a fill of whole frames.
type callbackReader struct {
	fill   FillFunc
	frame  int
	closed atomic.Bool
}

func (r *callbackReader) Read(p []byte) (int, error) {
	if r.closed.Load() {
		return 0, io.EOF
	}

	n := len(p) - len(p)%r.frame
	if n == 0 {
		return 0, io.ErrShortBuffer
	}
	r.fill(p[:n])

	return n, nil
}

type otoStream struct {
	mu     sync.Mutex
	player *oto.Player
	reader *callbackReader
}

func (s *otoStream) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.player == nil {
		return ErrStreamClosed
	}
	s.player.Play()

	return nil
}

func (s *otoStream) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.player == nil {
		return nil
	}

	s.reader.closed.Store(true)
	err := s.player.Close()
	s.player = nil

	return err
}
