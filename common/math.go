package common

import "math"

// Clamp restricts v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Sign returns -1, 0 or 1.
func Sign(v float64) int {
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	}
	return 0
}

// FloorDiv returns floor(v / size) as an int.
func FloorDiv(v, size int) int {
	return int(math.Floor(float64(v) / float64(size)))
}

// CeilDiv returns ceil(v / size) as an int.
func CeilDiv(v, size int) int {
	return int(math.Ceil(float64(v) / float64(size)))
}
