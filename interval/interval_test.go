package interval_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvroute/interval"
)

func TestInterval_Intersect(t *testing.T) {
	a := interval.Interval{Min: 0, Max: 10}
	b := interval.Interval{Min: 5, Max: 20}

	require.Equal(t, interval.Interval{Min: 5, Max: 10}, a.Intersect(b))
	require.True(t, a.Intersect(interval.Interval{Min: 11, Max: 12}).IsEmpty())
	require.True(t, interval.Unbounded().Contains(math.MinInt64))
	require.Equal(t, "[-inf, 3]", interval.Interval{Min: math.MinInt64, Max: 3}.String())
}

func TestExtendedValue_Order(t *testing.T) {
	var (
		neg = interval.NegInf
		pos = interval.PosInf
		one = interval.Finite(1)
	)
	assert.True(t, neg.Less(one))
	assert.True(t, one.Less(pos))
	assert.True(t, neg.Less(neg.Add(interval.Finite(1))), "finite part breaks ties")
	assert.True(t, neg.Add(neg).Less(neg))
	assert.Equal(t, one, pos.Add(one).Sub(pos), "unbounded contributions cancel exactly")
	assert.Equal(t, int64(math.MaxInt64), pos.Int64())
	assert.Equal(t, int64(math.MinInt64), neg.Int64())
}

func TestExtendedInterval_UnboundedDemandThenCapacity(t *testing.T) {
	// [0,0] + [-inf, 5] = [-inf, 5]; ∩ [0, 10] = [0, 5].
	cumul := interval.ToExtended(interval.Point(0))
	cumul = cumul.Add(interval.ToExtended(interval.Interval{Min: math.MinInt64, Max: 5}))
	require.False(t, cumul.IsEmpty())
	require.Equal(t, int64(1), cumul.NumNegInf)

	cumul = cumul.Intersect(interval.ToExtended(interval.Interval{Min: 0, Max: 10}))
	require.Equal(t, interval.Interval{Min: 0, Max: 5}, cumul.Interval())
	require.Zero(t, cumul.NumNegInf)
}

func TestExtendedInterval_SaturatesNearLimits(t *testing.T) {
	const big = int64(1) << 62
	// [0, 2^62] + [2^62, 2^62] overflows on the upper side.
	cumul := interval.ToExtended(interval.Interval{Min: 0, Max: big})
	cumul = cumul.Add(interval.ToExtended(interval.Point(big)))
	require.Equal(t, interval.Interval{Min: big, Max: math.MaxInt64}, cumul.Interval())

	cumul = cumul.Intersect(interval.ToExtended(interval.Interval{Min: big, Max: math.MaxInt64 - 1}))
	require.False(t, cumul.IsEmpty())
	require.Equal(t, interval.Interval{Min: big, Max: math.MaxInt64 - 1}, cumul.Interval())

	low := interval.Finite(math.MinInt64 + 1).Sub(interval.Finite(big))
	require.Equal(t, interval.Finite(math.MinInt64), low)
	require.True(t, low.IsFinite())
	require.Equal(t, interval.Finite(math.MaxInt64), interval.Finite(big).Add(interval.Finite(big)))
	require.True(t, interval.NegInf.Less(low))
}

func TestExtendedInterval_Empty(t *testing.T) {
	e := interval.ToExtended(interval.Interval{Min: 3, Max: 7})
	require.False(t, e.IsEmpty())
	require.True(t, e.Intersect(interval.ToExtended(interval.Interval{Min: 8, Max: 9})).IsEmpty())
	require.False(t, interval.ToExtended(interval.Unbounded()).IsEmpty())
}

func TestSaturatingArithmetic(t *testing.T) {
	const (
		maxI = int64(math.MaxInt64)
		minI = int64(math.MinInt64)
	)
	tests := []struct {
		name string
		got  int64
		want int64
	}{
		{"add", interval.CapAdd(2, 3), 5},
		{"add overflow", interval.CapAdd(maxI, 1), maxI},
		{"add underflow", interval.CapAdd(minI, -1), minI},
		{"sub", interval.CapSub(2, 3), -1},
		{"sub min", interval.CapSub(0, minI), maxI},
		{"sub min negative", interval.CapSub(-1, minI), maxI},
		{"prod", interval.CapProd(-4, 5), -20},
		{"prod overflow", interval.CapProd(maxI/2, 3), maxI},
		{"prod underflow", interval.CapProd(maxI/2, -3), minI},
		{"prod min", interval.CapProd(minI, -1), maxI},
		{"prod zero", interval.CapProd(0, minI), 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.got, tt.name)
	}
}
