package format

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Interpolate maps a normalized position to a color on the scale.
//
// It scans adjacent domain pairs in order and, for the first pair
// containing the position inclusively, blends the corresponding range
// colors by the local fraction. Positions below the first domain stop
// clamp to the first range color; positions above the last stop clamp to
// the last range entry. Non-finite positions (flat or empty datasets)
// clamp to the first range color.
//
// Malformed scales degrade instead of failing: a range shorter than the
// domain yields the nearest valid edge color, a zero-width segment yields
// its left color, and an empty range yields "".
func Interpolate(pos float64, scale ColorScale) string {
	domain, rng := scale.Domain, scale.Range
	if len(rng) == 0 {
		return ""
	}
	if len(domain) == 0 {
		return rng[0]
	}
	if math.IsNaN(pos) || math.IsInf(pos, 0) {
		return rng[0]
	}

	for i := 0; i+1 < len(domain); i++ {
		lo, hi := domain[i], domain[i+1]
		if pos < lo || pos > hi {
			continue
		}
		if i >= len(rng) {
			return rng[len(rng)-1]
		}
		if i+1 >= len(rng) || hi == lo {
			return rng[i]
		}
		t := (pos - lo) / (hi - lo)
		return Blend(rng[i], rng[i+1], t)
	}

	if pos <= domain[0] {
		return rng[0]
	}
	if pos >= domain[len(domain)-1] {
		return rng[len(rng)-1]
	}
	return rng[0]
}

// Blend linearly interpolates between two 24-bit sRGB hex colors.
// Each channel is blended independently as round(c1 + (c2-c1)*t) and the
// result is reassembled as zero-padded "#rrggbb". There is no gamma
// correction, alpha channel, or color-space conversion. Colors that fail
// to parse return the first color unchanged.
func Blend(a, b string, t float64) string {
	ar, ag, ab, ok := parseHexColor(a)
	if !ok {
		return a
	}
	br, bg, bb, ok := parseHexColor(b)
	if !ok {
		return a
	}
	return fmt.Sprintf("#%02x%02x%02x",
		blendChannel(ar, br, t),
		blendChannel(ag, bg, t),
		blendChannel(ab, bb, t))
}

func blendChannel(c1, c2 uint8, t float64) uint8 {
	v := math.Round(float64(c1) + (float64(c2)-float64(c1))*t)
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

// parseHexColor parses "#rrggbb" (leading '#' optional) into channels.
func parseHexColor(s string) (r, g, b uint8, ok bool) {
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 {
		return 0, 0, 0, false
	}
	n, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 0, 0, 0, false
	}
	return uint8(n >> 16), uint8(n >> 8), uint8(n), true
}
