// Package id supplies opaque unique identifiers for albums and images.
//
// The tree engine requires only global uniqueness from an id, no ordering
// and no parseable structure, so a random UUID is sufficient.
package id

import "github.com/google/uuid"

// New returns a fresh opaque id, unique across the forest for any
// practical number of nodes.
func New() string {
	return uuid.NewString()
}
