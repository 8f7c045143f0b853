// SPDX-License-Identifier: EPL-2.0

package audio

import "errors"

var (
	ErrInvalidDstSize  = errors.New("dst size must be multiple of channels")
	ErrInvalidChannels = errors.New("source must have at least one channel")
	ErrInvalidRate     = errors.New("sample rate must be positive")
)
