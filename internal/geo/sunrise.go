package geo

import (
	"fmt"
	"time"
)

// UTC offsets observed around the world. Offsets outside this range wrap.
const (
	MinUTCOffset = -12
	MaxUTCOffset = 14
)

// anchorZone is the fixed calculation anchor (UTC+8). The band math is a
// heuristic prompt constraint, not an astronomical sunrise computation, so
// a fixed anchor with hour granularity is sufficient.
var anchorZone = time.FixedZone("UTC+8", 8*60*60)

// SunriseBand is the UTC-offset range whose local time is near 06:00, with
// a human-readable hint of which regions fall inside it.
type SunriseBand struct {
	MinOffset  int
	MaxOffset  int
	RegionHint string
}

// String renders the band in the form used inside generation prompts.
func (b SunriseBand) String() string {
	return fmt.Sprintf("UTC%+d to UTC%+d (%s)", b.MinOffset, b.MaxOffset, b.RegionHint)
}

// CurrentSunriseBand computes which time-zone band is currently undergoing
// local sunrise. With referenceHour taken in the anchor zone, the offset at
// which local time is 06:00 is 6 - referenceHour + 8, normalized into the
// observed offset range; the band is that value ±1.
func CurrentSunriseBand(now time.Time) SunriseBand {
	referenceHour := now.In(anchorZone).Hour()

	ideal := NormalizeOffset(6 - referenceHour + 8)

	return SunriseBand{
		MinOffset:  NormalizeOffset(ideal - 1),
		MaxOffset:  NormalizeOffset(ideal + 1),
		RegionHint: regionHint(ideal),
	}
}

// NormalizeOffset wraps a UTC offset into [MinUTCOffset, MaxUTCOffset] by
// shifting whole days.
func NormalizeOffset(offset int) int {
	for offset < MinUTCOffset {
		offset += 24
	}
	for offset > MaxUTCOffset {
		offset -= 24
	}
	return offset
}

// regionBuckets maps offset sub-ranges to named world regions. Offsets
// outside every bucket fall through to a generic hint.
var regionBuckets = []struct {
	min, max int
	hint     string
}{
	{13, 14, "date-line Pacific islands"},
	{9, 12, "East Asia, eastern Australia and the Pacific islands"},
	{5, 8, "South Asia, Southeast Asia and western Australia"},
	{1, 4, "the Middle East, East Africa and Eastern Europe"},
	{-1, 0, "Western Europe and West Africa"},
	{-5, -2, "the mid-Atlantic and eastern South America"},
	{-9, -6, "North and South America"},
	{-12, -10, "the central Pacific"},
}

func regionHint(offset int) string {
	for _, bucket := range regionBuckets {
		if offset >= bucket.min && offset <= bucket.max {
			return bucket.hint
		}
	}
	return "anywhere in the world"
}
