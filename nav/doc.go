// Package nav implements the turn-by-turn pedestrian navigation core.
//
// This package handles:
// - Bridging a platform location stream into engine-consumable callbacks
// - Matching live position fixes against the active route step
// - Advancing the step pointer and detecting arrival
// - Sequencing spoken instructions exactly once per step per threshold
//
// The Engine owns all mutable session state. Position fixes, user commands
// and watch errors are serialized through one mutex, which is the Go
// rendition of the original single-threaded callback model and the guard
// against fixes arriving after teardown.
package nav
