// SPDX-License-Identifier: EPL-2.0

// Package aiff decodes uncompressed AIFF files through
// github.com/go-audio/aiff. Samples are big-endian integer PCM in the
// container and come out of the Source as float32 in [-1, 1].
package aiff
