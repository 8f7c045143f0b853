// SPDX-License-Identifier: EPL-2.0

package device

import (
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/gen2brain/malgo"

	"github.com/ik5/pcmix/mixer"
)

// Malgo plays through miniaudio. Its callback receives exactly the number of
// frames the device asks for, so blocks may be shorter than Spec.Samples.
type Malgo struct {
	mu     sync.Mutex
	ctx    *malgo.AllocatedContext
	logger *log.Logger
}

// NewMalgo returns a miniaudio backend. Library messages go to logger, or
// log.Default() when nil.
func NewMalgo(logger *log.Logger) *Malgo {
	if logger == nil {
		logger = log.Default()
	}
	return &Malgo{logger: logger}
}

func (m *Malgo) Name() string { return "malgo" }

func (m *Malgo) Init() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.ctx != nil {
		return nil
	}

	ctx, err := malgo.InitContext(nil, malgo.ContextConfig{}, func(message string) {
		m.logger.Printf("malgo: %s", strings.TrimSpace(message))
	})
	if err != nil {
		return fmt.Errorf("failed to initialize malgo context: %w", err)
	}
	m.ctx = ctx

	return nil
}

func (m *Malgo) Open(want Spec, fill FillFunc) (Stream, Spec, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.ctx == nil {
		return nil, Spec{}, ErrSubsystemNotInitialized
	}
	if want.Encoding != mixer.EncodingS16LE {
		return nil, Spec{}, fmt.Errorf("unsupported encoding: %v", want.Encoding)
	}

	cfg := malgo.DefaultDeviceConfig(malgo.Playback)
	cfg.Playback.Format = malgo.FormatS16
	cfg.Playback.Channels = uint32(want.Channels)
	cfg.SampleRate = uint32(want.SampleRate)
	cfg.PeriodSizeInFrames = uint32(want.Samples)
	cfg.Alsa.NoMMap = 1

	frame := want.Channels * 2
	dev, err := malgo.InitDevice(m.ctx.Context, cfg, malgo.DeviceCallbacks{
		Data: func(out, _ []byte, frameCount uint32) {
			n := min(len(out), int(frameCount)*frame)
			fill(out[:n])
		},
	})
	if err != nil {
		return nil, Spec{}, fmt.Errorf("failed to initialize playback device: %w", err)
	}

	return &malgoStream{dev: dev, logger: m.logger}, want, nil
}

func (m *Malgo) Quit() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.ctx == nil {
		return nil
	}

	err := m.ctx.Uninit()
	m.ctx.Free()
	m.ctx = nil

	return err
}

type malgoStream struct {
	mu     sync.Mutex
	dev    *malgo.Device
	logger *log.Logger
}

func (s *malgoStream) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.dev == nil {
		return ErrStreamClosed
	}
	if err := s.dev.Start(); err != nil {
		return fmt.Errorf("failed to start device: %w", err)
	}

	return nil
}

func (s *malgoStream) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.dev == nil {
		return nil
	}

	if err := s.dev.Stop(); err != nil {
		s.logger.Printf("Warning: device stop error: %v", err)
	}
	s.dev.Uninit()
	s.dev = nil

	return nil
}
