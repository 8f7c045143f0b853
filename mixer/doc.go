// SPDX-License-Identifier: EPL-2.0

// Package mixer is the real-time core: decoded assets, the playback queue of
// voices cloned from them, and the per-tick mix that sums the queue into one
// S16LE stereo block.
//
// All output is 44.1 kHz, 2 channels, 16-bit signed little-endian. Volume is
// an integer in [0, MaxVolume]; samples are scaled by volume/MaxVolume and
// summed with saturation.
//
// A Mixer is driven by a device: Play, FadeOut and Unload run on application
// goroutines, Mix runs on the audio callback, and the device serializes them
// with a single lock. Mix does not allocate.
package mixer
