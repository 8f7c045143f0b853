// SPDX-License-Identifier: EPL-2.0

package aiff

import "errors"

var (
	// ErrNotAiffFile indicates the input is not an AIFF container
	ErrNotAiffFile = errors.New("not an AIFF file")

	// ErrUnsupportedBitDepth indicates a sample size other than 16, 24 or 32 bits
	ErrUnsupportedBitDepth = errors.New("unsupported AIFF bit depth, only 16, 24 and 32 bits are supported")

	// ErrUnsupportedAiffLayout indicates a missing or empty COMM chunk
	ErrUnsupportedAiffLayout = errors.New("unsupported AIFF layout")
)
