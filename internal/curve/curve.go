// Package curve holds the spaced-repetition curves: where sessions fall
// relative to a course's start date, and how long each one lasts.
package curve

import "math"

// OffsetTemplate is the ideal day offset of each session after J0, following
// an expanding forgetting-curve spacing.
var OffsetTemplate = []int{1, 3, 7, 14, 21, 30, 45, 60, 75, 90, 105, 120, 135}

// ExtensionStep is added to the previous offset once OffsetTemplate is exhausted.
const ExtensionStep = 15

// DurationFactors is the share of a course's base duration spent on each
// session. Sessions past the end reuse the last factor.
var DurationFactors = []float64{0.6, 0.5, 0.4, 0.35, 0.3, 0.25, 0.2, 0.15, 0.15, 0.1, 0.1}

// MaxOffset is the largest offset allowed for a window of totalDays between
// J0 and the exam.
func MaxOffset(totalDays int) int {
	return max(1, totalDays-1)
}

// Offsets returns n day offsets from J0 for a course whose exam is totalDays
// after J0. Offsets are strictly increasing and never exceed MaxOffset as long
// as n <= MaxOffset(totalDays); past that the tail saturates at MaxOffset.
// When totalDays <= 0 every offset is 0.
func Offsets(n, totalDays int) []int {
	if n <= 0 {
		return nil
	}
	offsets := make([]int, n)
	if totalDays <= 0 {
		return offsets
	}

	maxOffset := MaxOffset(totalDays)
	last := 0
	for i := 0; i < n; i++ {
		var candidate int
		if i < len(OffsetTemplate) {
			candidate = OffsetTemplate[i]
		} else {
			candidate = last + ExtensionStep
		}

		// Leave one day for each offset still to come.
		ceiling := max(1, maxOffset-(n-1-i))
		candidate = min(candidate, ceiling)
		if i > 0 && candidate <= last {
			candidate = min(maxOffset, last+1)
		}
		offsets[i] = candidate
		last = candidate
	}
	return offsets
}

// Duration returns the length in minutes of the session at index for a course
// of base minutes, clamped to [minMinutes, maxMinutes].
func Duration(base, index, minMinutes, maxMinutes int) int {
	if index < 0 {
		index = 0
	}
	factor := DurationFactors[len(DurationFactors)-1]
	if index < len(DurationFactors) {
		factor = DurationFactors[index]
	}
	estimated := int(math.Round(float64(base) * factor))
	return max(minMinutes, min(maxMinutes, estimated))
}
