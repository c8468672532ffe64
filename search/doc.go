// Package search improves routes by random local search filtered through
// the checkers of an instance.Model.
//
// Moves:
//   - insert an unperformed node after a random position of a random path;
//   - relocate a node within its path or to another path;
//   - exchange the tails of two paths;
//   - unperform a node.
//
// Every move is described as chains of the committed array, so the checkers
// evaluate untouched stretches in O(1) or O(log). A feasible move is kept
// when energy cost plus unperformed penalty does not increase.
//
// Determinism:
//   - Same instance, options and seed ⇒ same result. Time limits and
//     context cancellation are polled every 256 moves and break this only
//     when they fire.
//
// Concurrency:
//   - Run uses one Model and must not share it. RunParallel builds one
//     Model per worker and derives each worker's seed with SplitMix64.
package search
