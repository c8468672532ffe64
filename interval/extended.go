package interval

import "math"

// ExtendedValue is the number Inf·∞ + Value.
//
// Values are ordered lexicographically: the infinity count decides first, the
// finite part breaks ties. The set is a totally ordered abelian group, so sums,
// differences, min and max compose without special cases. The finite part
// saturates at the int64 limits; the group laws are exact only while every
// intermediate finite part stays strictly inside them.
type ExtendedValue struct {
	Value int64
	Inf   int64
}

// PosInf and NegInf are the canonical unbounded values.
var (
	PosInf = ExtendedValue{Inf: 1}
	NegInf = ExtendedValue{Inf: -1}
)

// Finite wraps v. math.MinInt64 and math.MaxInt64 are NOT special here;
// use LowerOf/UpperOf to read Interval bounds.
func Finite(v int64) ExtendedValue {
	return ExtendedValue{Value: v}
}

// LowerOf reads a lower bound: math.MinInt64 is −∞.
func LowerOf(v int64) ExtendedValue {
	if v == math.MinInt64 {
		return NegInf
	}
	return ExtendedValue{Value: v}
}

// UpperOf reads an upper bound: math.MaxInt64 is +∞.
func UpperOf(v int64) ExtendedValue {
	if v == math.MaxInt64 {
		return PosInf
	}
	return ExtendedValue{Value: v}
}

// Add returns x + y.
func (x ExtendedValue) Add(y ExtendedValue) ExtendedValue {
	return ExtendedValue{Value: CapAdd(x.Value, y.Value), Inf: x.Inf + y.Inf}
}

// Sub returns x − y.
func (x ExtendedValue) Sub(y ExtendedValue) ExtendedValue {
	return ExtendedValue{Value: CapSub(x.Value, y.Value), Inf: x.Inf - y.Inf}
}

// Less reports x < y.
func (x ExtendedValue) Less(y ExtendedValue) bool {
	if x.Inf != y.Inf {
		return x.Inf < y.Inf
	}
	return x.Value < y.Value
}

// LessEq reports x ≤ y.
func (x ExtendedValue) LessEq(y ExtendedValue) bool {
	return !y.Less(x)
}

// IsFinite reports whether the infinity count is zero.
func (x ExtendedValue) IsFinite() bool {
	return x.Inf == 0
}

// Int64 converts back to int64, saturating unbounded values to
// math.MinInt64 / math.MaxInt64.
func (x ExtendedValue) Int64() int64 {
	switch {
	case x.Inf > 0:
		return math.MaxInt64
	case x.Inf < 0:
		return math.MinInt64
	default:
		return x.Value
	}
}

// MaxOf returns the larger of x and y.
func MaxOf(x, y ExtendedValue) ExtendedValue {
	if x.Less(y) {
		return y
	}
	return x
}

// MinOf returns the smaller of x and y.
func MinOf(x, y ExtendedValue) ExtendedValue {
	if y.Less(x) {
		return y
	}
	return x
}

// ExtendedInterval is [Min − NumNegInf·∞, Max + NumPosInf·∞].
//
// For ordinary intervals both counters are non-negative. Intermediate values
// produced by subtraction may carry negative counters; they are still exact
// elements of the ordered group and compare correctly.
type ExtendedInterval struct {
	Min       int64
	Max       int64
	NumNegInf int64
	NumPosInf int64
}

// ToExtended converts iv, reading math.MinInt64/math.MaxInt64 as −∞/+∞.
func ToExtended(iv Interval) ExtendedInterval {
	return FromBounds(LowerOf(iv.Min), UpperOf(iv.Max))
}

// FromBounds builds the interval [lo, hi].
func FromBounds(lo, hi ExtendedValue) ExtendedInterval {
	return ExtendedInterval{Min: lo.Value, NumNegInf: -lo.Inf, Max: hi.Value, NumPosInf: hi.Inf}
}

// Lower returns the lower bound as an ExtendedValue.
func (e ExtendedInterval) Lower() ExtendedValue {
	return ExtendedValue{Value: e.Min, Inf: -e.NumNegInf}
}

// Upper returns the upper bound as an ExtendedValue.
func (e ExtendedInterval) Upper() ExtendedValue {
	return ExtendedValue{Value: e.Max, Inf: e.NumPosInf}
}

// IsEmpty reports whether Lower() > Upper().
func (e ExtendedInterval) IsEmpty() bool {
	return e.Upper().Less(e.Lower())
}

// Add returns the Minkowski sum e + o, saturating finite bounds.
func (e ExtendedInterval) Add(o ExtendedInterval) ExtendedInterval {
	return ExtendedInterval{
		Min:       CapAdd(e.Min, o.Min),
		Max:       CapAdd(e.Max, o.Max),
		NumNegInf: e.NumNegInf + o.NumNegInf,
		NumPosInf: e.NumPosInf + o.NumPosInf,
	}
}

// Intersect returns e ∩ o; the result may be empty.
func (e ExtendedInterval) Intersect(o ExtendedInterval) ExtendedInterval {
	return FromBounds(MaxOf(e.Lower(), o.Lower()), MinOf(e.Upper(), o.Upper()))
}

// Interval converts back to a plain Interval, saturating unbounded sides.
func (e ExtendedInterval) Interval() Interval {
	return Interval{Min: e.Lower().Int64(), Max: e.Upper().Int64()}
}
