// SPDX-License-Identifier: EPL-2.0

package device

import "sync"

// Manual is an in-process backend with no hardware behind it. The caller
// drives the stream by calling Tick, which makes it suitable for tests and
// for rendering to a file.
type Manual struct {
	// FailInit and FailOpen, when set, are returned by Init and Open.
	FailInit error
	FailOpen error

	mu     sync.Mutex
	stream *ManualStream
}

func NewManual() *Manual { return &Manual{} }

func (*Manual) Name() string { return "manual" }

func (m *Manual) Init() error { return m.FailInit }

func (m *Manual) Open(want Spec, fill FillFunc) (Stream, Spec, error) {
	if m.FailOpen != nil {
		return nil, Spec{}, m.FailOpen
	}

	s := &ManualStream{fill: fill, block: want.BlockBytes()}

	m.mu.Lock()
	m.stream = s
	m.mu.Unlock()

	return s, want, nil
}

func (*Manual) Quit() error { return nil }

// Stream is the most recently opened stream, or nil.
func (m *Manual) Stream() *ManualStream {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.stream
}

// ManualStream hands out blocks on demand.
type ManualStream struct {
	mu      sync.Mutex
	fill    FillFunc
	block   int
	started bool
	closed  bool
}

func (s *ManualStream) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStreamClosed
	}
	s.started = true

	return nil
}

func (s *ManualStream) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true

	return nil
}

func (s *ManualStream) Started() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.started
}

func (s *ManualStream) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.closed
}

// TickInto runs one callback into out. It reports false, leaving out
// untouched, when the stream is paused or closed.
func (s *ManualStream) TickInto(out []byte) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started || s.closed {
		return false
	}
	s.fill(out)

	return true
}

// Tick runs one full-size callback and returns the block, or nil when the
// stream is not running.
func (s *ManualStream) Tick() []byte {
	out := make([]byte, s.block)
	if !s.TickInto(out) {
		return nil
	}
	return out
}

// TickN runs n callbacks and returns their output back to back. It stops
// early if the stream stops running.
func (s *ManualStream) TickN(n int) []byte {
	out := make([]byte, 0, n*s.block)
	for range n {
		block := s.Tick()
		if block == nil {
			break
		}
		out = append(out, block...)
	}

	return out
}
