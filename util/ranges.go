package util

import (
	"math"
	"strconv"
	"strings"
)

// Infinity is accepted as the upper bound of a range, `3-infinity`.
const Infinity = "infinity"

// Range is an inclusive integer range.
type Range struct {
	Min int
	Max int
}

// Contains reports whether val lies within the range.
func (r Range) Contains(val int) bool {
	return val >= r.Min && val <= r.Max
}

// Ranges is a list of ranges, a value is in the list if any range contains it.
type Ranges []Range

// ParseRange parses `a`, `a-b` or `a-infinity`. Items that are not numbers read as 0, and an upper
// bound below the lower one is raised to it.
func ParseRange(str string) Range {
	str = strings.TrimSpace(str)

	lower, upper, found := strings.Cut(str, "-")
	if !found {
		upper = lower
	}

	r := Range{Min: atoi(lower), Max: atoi(upper)}

	if strings.TrimSpace(upper) == Infinity {
		r.Max = math.MaxInt
	}

	if r.Max < r.Min {
		r.Max = r.Min
	}

	return r
}

// ParseRanges parses a comma separated list of ranges, `1-3,5,7-infinity`.
func ParseRanges(str string) Ranges {
	items := SplitList(str)
	ranges := make(Ranges, 0, len(items))

	for _, item := range items {
		ranges = append(ranges, ParseRange(item))
	}

	return ranges
}

// InRanges reports whether val lies in any of the ranges.
func InRanges(val int, ranges Ranges) bool {
	for _, r := range ranges {
		if r.Contains(val) {
			return true
		}
	}

	return false
}

func atoi(str string) int {
	val, err := strconv.Atoi(strings.TrimSpace(str))
	if err != nil {
		return 0
	}

	return val
}
