// SPDX-License-Identifier: EPL-2.0

package mixer

import (
	"encoding/binary"

	"github.com/ik5/pcmix/utils"
)

// MixS16 adds S16LE samples from src into dst, scaled by volume/MaxVolume,
// saturating at the int16 limits. A volume of 0 leaves dst untouched. Only
// whole samples present in both buffers are mixed.
func MixS16(dst, src []byte, volume int) {
	if volume <= 0 {
		return
	}
	if volume > MaxVolume {
		volume = MaxVolume
	}

	n := min(len(dst), len(src)) &^ 1
	vol := int32(volume)

	for i := 0; i < n; i += 2 {
		s := int32(int16(binary.LittleEndian.Uint16(src[i:]))) * vol / MaxVolume
		d := int32(int16(binary.LittleEndian.Uint16(dst[i:])))
		binary.LittleEndian.PutUint16(dst[i:], uint16(utils.SaturateInt16(d+s)))
	}
}
