package interval

import (
	"fmt"
	"math"
)

// Interval is a closed range [Min, Max]. Min > Max denotes the empty interval.
// math.MinInt64 / math.MaxInt64 bounds stand for −∞ / +∞.
type Interval struct {
	Min int64 `yaml:"min"`
	Max int64 `yaml:"max"`
}

// Unbounded returns [−∞, +∞].
func Unbounded() Interval {
	return Interval{Min: math.MinInt64, Max: math.MaxInt64}
}

// Point returns the degenerate interval [v, v].
func Point(v int64) Interval {
	return Interval{Min: v, Max: v}
}

// IsEmpty reports whether Min > Max.
func (iv Interval) IsEmpty() bool {
	return iv.Min > iv.Max
}

// Contains reports whether Min ≤ x ≤ Max.
func (iv Interval) Contains(x int64) bool {
	return iv.Min <= x && x <= iv.Max
}

// Intersect returns iv ∩ o; the result may be empty.
func (iv Interval) Intersect(o Interval) Interval {
	if o.Min > iv.Min {
		iv.Min = o.Min
	}
	if o.Max < iv.Max {
		iv.Max = o.Max
	}
	return iv
}

// String renders the interval as "[min, max]" with ±inf for unbounded sides.
func (iv Interval) String() string {
	var lo, hi = fmt.Sprint(iv.Min), fmt.Sprint(iv.Max)
	if iv.Min == math.MinInt64 {
		lo = "-inf"
	}
	if iv.Max == math.MaxInt64 {
		hi = "+inf"
	}
	return "[" + lo + ", " + hi + "]"
}
