// SPDX-License-Identifier: EPL-2.0

package pcmix

import (
	"errors"
	"fmt"
)

var (
	// ErrLoad matches every error returned by Load, LoadReader and LoadSource.
	ErrLoad = errors.New("failed to open wave file")

	ErrUnsupportedFormat = errors.New("unsupported audio format")
	ErrNoDevice          = errors.New("no audio device")
)

// LoadError reports a sound that could not be loaded.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%v: %v", ErrLoad, e.Err)
	}
	return fmt.Sprintf("%v: %s: %v", ErrLoad, e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

func (e *LoadError) Is(target error) bool { return target == ErrLoad }
