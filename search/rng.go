package search

import "math/rand"

// defaultSeed replaces a zero seed so that the default run is reproducible.
const defaultSeed int64 = 1

// splitMixGamma is the SplitMix64 stream increment.
const splitMixGamma = 0x9e3779b97f4a7c15

// workerSeed returns the seed worker w runs with. Worker 0 keeps seed, so a
// single-worker RunParallel replays Run; the others get a SplitMix64 mix of
// seed and w.
func workerSeed(seed int64, w int) int64 {
	if seed == 0 {
		seed = defaultSeed
	}
	if w == 0 {
		return seed
	}
	x := uint64(seed) ^ (uint64(w) + splitMixGamma)
	x += splitMixGamma
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	x ^= x >> 31
	if x == 0 {
		return defaultSeed
	}
	return int64(x)
}

// workerRNG returns the private generator of worker w and the seed behind it.
// A *rand.Rand is not goroutine-safe; every worker owns one.
func workerRNG(seed int64, w int) (*rand.Rand, int64) {
	s := workerSeed(seed, w)
	return rand.New(rand.NewSource(s)), s
}
