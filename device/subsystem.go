// SPDX-License-Identifier: EPL-2.0

package device

import (
	"fmt"
	"sync"
)

// Subsystem is an initialized audio backend. Devices may only be opened
// while it is up.
type Subsystem struct {
	mu          sync.Mutex
	backend     Backend
	initialized bool
}

// Init initializes b and returns the running subsystem.
func Init(b Backend) (*Subsystem, error) {
	if b == nil {
		return nil, ErrNoBackend
	}

	if err := b.Init(); err != nil {
		return nil, fmt.Errorf("init %s: %w", b.Name(), err)
	}

	return &Subsystem{backend: b, initialized: true}, nil
}

// WasInit reports whether s is initialized and not yet shut down. It is
// safe to call on a nil Subsystem.
func (s *Subsystem) WasInit() bool {
	if s == nil {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.initialized
}

// Backend returns the backend s was initialized with.
func (s *Subsystem) Backend() Backend { return s.backend }

// Quit shuts the backend down. Devices opened from s should be closed first.
// Calling Quit again has no effect.
func (s *Subsystem) Quit() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return nil
	}
	s.initialized = false

	if err := s.backend.Quit(); err != nil {
		return fmt.Errorf("quit %s: %w", s.backend.Name(), err)
	}

	return nil
}

func (s *Subsystem) open(want Spec, fill FillFunc) (Stream, Spec, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return nil, Spec{}, ErrSubsystemNotInitialized
	}

	return s.backend.Open(want, fill)
}
