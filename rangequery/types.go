package rangequery

// Panic messages for programmer errors (no magic strings).
const (
	panicEmptyRange       = "rangequery: empty or inverted range"
	panicRangeOutOfBounds = "rangequery: range out of bounds"
	panicNotBuilt         = "rangequery: range covers elements pushed after the last build"
	panicStraddle         = "rangequery: WeightedWaveletTree: range straddles two trees"
	panicTableStraddle    = "rangequery: SparseTable: range straddles two batches"
	panicNilCombine       = "rangequery: NewSparseTable: nil combine function"
)
