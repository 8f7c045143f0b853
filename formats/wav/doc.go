// SPDX-License-Identifier: EPL-2.0

// Package wav reads and writes RIFF/WAVE files.
//
// Decoding is done by github.com/go-audio/wav and accepts integer PCM at 16,
// 24 or 32 bits with any channel count and sample rate:
//
//	src, err := wav.Decoder{}.Decode(file)
//	if errors.Is(err, wav.ErrNotWavFile) {
//	    // not a RIFF/WAVE container
//	}
//
// WriteWAV16 writes interleaved 16-bit PCM with a canonical 44-byte header.
// It only needs an io.Writer, so it also works on pipes and stdout.
package wav
