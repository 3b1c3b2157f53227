// Package model defines the core data structures of the pictree library:
// the forest of albums and the images inside them.
//
// # Forest
//
// A Forest is the ordered list of root albums. Every album may nest further
// albums to arbitrary depth:
//
//	forest := model.Forest{
//	    model.NewAlbum("a1", "Trips"),
//	}
//
// # Invariants
//
// The tree engine maintains these invariants across every mutation:
//
//   - every Album and Image id is unique within the whole forest
//   - no album is its own descendant
//   - every node is reachable from exactly one parent
//
// Nodes are never mutated by reference; edits produce a structurally new
// forest (see the tree package). This package carries only the data
// definitions and read-only traversal helpers.
package model
