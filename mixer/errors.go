// SPDX-License-Identifier: EPL-2.0

package mixer

import "errors"

var (
	ErrNilAsset      = errors.New("mixer: nil asset")
	ErrEmptyAsset    = errors.New("mixer: asset holds no complete frame")
	ErrAssetUnloaded = errors.New("mixer: asset was unloaded")
	ErrQueueFull     = errors.New("mixer: too many voices queued")
)
