// SPDX-License-Identifier: EPL-2.0

package device

import "log"

// Config tunes a Device. The zero value is ready to use.
type Config struct {
	// Logger receives warnings. Nil means log.Default().
	Logger *log.Logger

	// MaxVoices caps how many voices may be queued at once; Play fails with
	// mixer.ErrQueueFull past it. 0 means no cap.
	MaxVoices int
}

func (c Config) logger() *log.Logger {
	if c.Logger == nil {
		return log.Default()
	}
	return c.Logger
}
