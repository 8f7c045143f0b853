// SPDX-License-Identifier: EPL-2.0

package device

import (
	"errors"
	"fmt"
)

var (
	ErrSubsystemNotInitialized = errors.New("audio subsystem is not initialized")
	ErrNoBackend               = errors.New("no audio backend")
	ErrDeviceClosed            = errors.New("audio device is closed")
	ErrStreamClosed            = errors.New("audio stream is closed")
)

// OpenWarning is why a Device runs without output.
type OpenWarning struct {
	Backend string
	Err     error
}

func (w *OpenWarning) Error() string {
	return fmt.Sprintf("failed to open audio device: %v", w.Err)
}

func (w *OpenWarning) Unwrap() error { return w.Err }
