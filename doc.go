// SPDX-License-Identifier: EPL-2.0

// Package pcmix is a small real-time PCM mixer: load sounds, open an audio
// device, and play any number of them at once with per-voice volume, looping
// and fade out.
//
// # Quick Start
//
//	sys, err := device.Init(device.NewMalgo(nil))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer sys.Quit()
//
//	dev, err := pcmix.OpenDevice(sys)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer dev.Close()
//
//	shot, err := pcmix.Load("shot.wav")
//	if err != nil {
//	    log.Print(err)
//	}
//	pcmix.Play(dev, shot, 0.8, false)
//
// OpenDevice only fails when the subsystem is not initialized. If the
// hardware cannot be opened the device comes back disabled, with a logged
// warning, and Play silently does nothing.
//
// # Formats
//
// Load picks a decoder from the file extension:
//   - .wav, .wave: RIFF/WAVE integer PCM, 16, 24 or 32 bit, via formats/wav
//   - .aif, .aiff: AIFF integer PCM via formats/aiff
//
// Every asset is converted to 44.1 kHz stereo signed 16-bit little-endian
// when it is loaded. Mono is copied to both channels, wider layouts are
// averaged down first, and other rates go through the cubic resampler in the
// audio package. 16-bit input at 44.1 kHz is kept bit for bit.
//
// # Mixing
//
// The device calls the mixer once per block of 4096 frames. Each queued voice
// contributes min(block, remaining) bytes scaled by volume/128, summed with
// saturation. Voices that run out are removed on the same tick unless they
// loop. A fading looping voice drops one volume step per tick and is removed
// when it reaches zero; while it fades, looping voices after it in the queue
// are held silent.
package pcmix
