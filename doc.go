// Package lvroute is a set of incremental feasibility and cost checkers for
// vehicle routing local search.
//
// 🚀 What is in the box?
//
//	A revertible route representation and checkers that evaluate a candidate
//	change in time proportional to the number of changed chains, not to the
//	length of the routes:
//		• pathstate: committed routes + pending changes as chains
//		• dimension: capacity of cumulative quantities, O(1) per indexed chain
//		• energy:    force × distance cost with a threshold, O(log) per chain
//		• breaks:    light check of driver breaks and interbreak limits
//		• filter:    runs checkers in order, commits or reverts
//
// Supporting packages:
//
//	interval/   — closed integer intervals, extended values, saturated arithmetic
//	rangequery/ — sparse table, range minimum, weighted wavelet tree
//	instance/   — YAML instances wired to a PathState and its checkers
//	search/     — seeded local search over an instance, optionally parallel
//	cmd/routecheck — validate, check and solve from the command line
//
// Cycle:
//
//	ps.ChangePath(...)            describe a candidate
//	manager.Propose(accept)       Relax, Check every checker, then
//	                              Commit all + ps.Commit, or ps.Revert
//
//	go get github.com/katalvlaran/lvroute
package lvroute
