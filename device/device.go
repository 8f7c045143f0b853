// SPDX-License-Identifier: EPL-2.0

package device

import (
	"errors"
	"log"
	"sync"

	"github.com/ik5/pcmix/mixer"
)

// Device is an open audio output and the queue of voices playing on it.
//
// All methods are safe for concurrent use.
type Device struct {
	mu      sync.Mutex
	mixer   *mixer.Mixer
	stream  Stream
	spec    Spec
	enabled bool
	closed  bool
	warning *OpenWarning
	logger  *log.Logger
}

// Open opens an output stream on sys and starts it.
//
// A nil or shut down sys is the only error. If the backend fails to open or
// start a stream the failure is logged and Open returns a disabled Device
// whose Warning describes it.
func Open(sys *Subsystem, cfg Config) (*Device, error) {
	if !sys.WasInit() {
		return nil, ErrSubsystemNotInitialized
	}

	d := &Device{
		mixer:  mixer.NewMixer(cfg.MaxVoices),
		spec:   DefaultSpec(),
		logger: cfg.logger(),
	}

	want := d.spec
	stream, got, err := sys.open(want, d.fill)
	if errors.Is(err, ErrSubsystemNotInitialized) {
		return nil, err
	}
	if err != nil {
		d.disable(sys.Backend().Name(), err)
		return d, nil
	}

	if got != want {
		d.logger.Printf("audio device opened with %v, requested %v", got, want)
	}

	d.mu.Lock()
	d.stream = stream
	d.spec = got
	d.enabled = true
	d.mu.Unlock()

	if err := stream.Start(); err != nil {
		d.mu.Lock()
		d.stream = nil
		d.enabled = false
		d.mu.Unlock()

		if cerr := stream.Close(); cerr != nil {
			d.logger.Printf("Warning: audio stream close error: %v", cerr)
		}
		d.disable(sys.Backend().Name(), err)
	}

	return d, nil
}

func (d *Device) disable(backend string, err error) {
	w := &OpenWarning{Backend: backend, Err: err}
	d.logger.Printf("Warning: %v", w)

	d.mu.Lock()
	d.warning = w
	d.mu.Unlock()
}

// fill is the stream callback.
func (d *Device) fill(out []byte) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		clear(out)
		return
	}

	d.mixer.Mix(out)
}

// Play queues a new voice of a at volume (0 to 1). It returns as soon as the
// voice is queued; the sound starts on the next callback.
//
// On a disabled Device Play is a no-op.
func (d *Device) Play(a *mixer.Asset, volume float64, loop bool) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	switch {
	case d.closed:
		return ErrDeviceClosed
	case a == nil:
		return mixer.ErrNilAsset
	case !d.enabled:
		return nil
	}

	return d.mixer.Play(a, volume, loop)
}

// FadeOut starts fading the looping voices of a. Each callback lowers their
// volume by one step until they go silent and are removed. It returns how
// many voices were affected.
func (d *Device) FadeOut(a *mixer.Asset) int {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.mixer.FadeOut(a)
}

// FadeOutAll fades every looping voice.
func (d *Device) FadeOutAll() int {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.mixer.FadeOutAll()
}

// Unload retires a. Voices already queued finish normally and the samples
// are freed with the last of them.
func (d *Device) Unload(a *mixer.Asset) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.mixer.Unload(a)
}

// Voices snapshots the queue in play order.
func (d *Device) Voices() []mixer.VoiceState {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.mixer.Voices()
}

// Len is the number of queued voices.
func (d *Device) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.mixer.Len()
}

// Enabled reports whether the device has a running stream.
func (d *Device) Enabled() bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.enabled
}

// Spec is the format the stream was opened with.
func (d *Device) Spec() Spec {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.spec
}

// Warning is the reason the device is disabled, or nil.
func (d *Device) Warning() *OpenWarning {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.warning
}

// Close stops the stream and drops every queued voice. Calling Close again
// returns nil.
func (d *Device) Close() error {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return nil
	}
	d.closed = true
	d.enabled = false
	stream := d.stream
	d.stream = nil
	d.mu.Unlock()

	// The backend may wait for an in-flight callback, which needs d.mu.
	var err error
	if stream != nil {
		err = stream.Close()
	}

	d.mu.Lock()
	d.mixer.Reset()
	d.mu.Unlock()

	return err
}
