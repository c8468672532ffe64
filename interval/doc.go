// Package interval provides the integer interval arithmetic shared by the
// route checkers.
//
// What is inside?
//
//	Interval         — a closed range [Min, Max] of int64, empty when Min > Max.
//	ExtendedValue    — c·∞ + v, an element of the ordered group Z×Z
//	                   (infinity count first, finite part second).
//	ExtendedInterval — [Min − NumNegInf·∞, Max + NumPosInf·∞].
//	CapAdd/CapSub/CapProd — saturating int64 arithmetic.
//
// Why count infinities?
//
//	A demand of [-∞, 5] followed by a capacity of [0, 10] must yield [0, 10]
//	and not a wrapped-around finite value. Counting infinities instead of
//	clamping keeps addition invertible: prefix sums of unbounded demands can
//	be subtracted from each other and still give the exact number of
//	unbounded contributions in between. math.MinInt64 and math.MaxInt64 in an
//	Interval are read as −∞ and +∞ by ToExtended.
//
// Complexity:
//   - Every operation is O(1) and allocation-free.
package interval
