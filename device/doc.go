// SPDX-License-Identifier: EPL-2.0

// Package device connects a mixer.Mixer to an audio output.
//
// A Subsystem wraps a Backend (malgo, oto, or the in-process Manual backend)
// and must be initialized before any Device is opened. A Device owns one
// output stream, the mixer feeding it, and the lock that serializes the
// backend's callback thread with Play, FadeOut and Unload.
//
// When the backend cannot open a stream, Open still returns a Device. It is
// disabled: Play accepts and discards requests, and Warning reports why.
package device
