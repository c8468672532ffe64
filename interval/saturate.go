package interval

import "math"

// CapAdd returns x + y saturated to [math.MinInt64, math.MaxInt64].
func CapAdd(x, y int64) int64 {
	var s = x + y
	// Overflow iff both operands share a sign that the sum does not.
	if (x >= 0) == (y >= 0) && (s >= 0) != (x >= 0) {
		if x >= 0 {
			return math.MaxInt64
		}
		return math.MinInt64
	}
	return s
}

// CapSub returns x − y saturated to [math.MinInt64, math.MaxInt64].
func CapSub(x, y int64) int64 {
	if y == math.MinInt64 {
		if x >= 0 {
			return math.MaxInt64
		}
		return x - y
	}
	return CapAdd(x, -y)
}

// CapProd returns x · y saturated to [math.MinInt64, math.MaxInt64].
func CapProd(x, y int64) int64 {
	if x == 0 || y == 0 {
		return 0
	}
	var p = x * y
	if p/y != x || (x == -1 && y == math.MinInt64) || (y == -1 && x == math.MinInt64) {
		if (x > 0) == (y > 0) {
			return math.MaxInt64
		}
		return math.MinInt64
	}
	return p
}
