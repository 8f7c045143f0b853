// SPDX-License-Identifier: EPL-2.0

// Package audio provides the streaming primitives used to bring decoded
// files into the mixer's output format.
//
// A Source yields interleaved float32 samples in [-1, 1]. Decoders build
// Sources from readers and are looked up by container name in a Registry.
// Sources chain:
//
//	res := audio.NewResampler(src, 44100)
//	st := audio.NewStereoMixer(res)
//	n, err := st.ReadSamples(buf)
//
// ConvertToStereo16 runs that chain to completion and returns int16 PCM,
// which is how sound assets are built.
//
// ReadSamples returns io.EOF once the stream is finished; a final call may
// return n > 0 together with io.EOF.
package audio
