package model

import "strings"

// Album is one folder node in the library tree. An album may hold images
// and nested sub-albums, and an album with neither is a valid empty folder.
//
// Albums are identified by ID, never by name: duplicate names among siblings
// are legal and must be treated as distinct entities.
//
// Albums are never mutated in place. Every edit to the library produces a
// structurally new forest in which the ancestors of the edited node are fresh
// values; untouched subtrees may be shared between the old and new forest.
type Album struct {
	// ID is an opaque identifier, unique across the whole forest.
	// It is generated client-side and never reused.
	ID string `json:"id"`

	// Name is the display name. It is not required to be unique
	// among siblings.
	Name string `json:"name"`

	// Images holds the album's images in display order.
	Images []Image `json:"images"`

	// SubAlbums holds the nested albums in display order.
	SubAlbums []*Album `json:"subAlbums"`
}

// NewAlbum creates an empty album with the given id and name.
func NewAlbum(id, name string) *Album {
	return &Album{
		ID:        id,
		Name:      name,
		Images:    []Image{},
		SubAlbums: []*Album{},
	}
}

// IsEmpty reports whether the album holds no images and no sub-albums.
func (a *Album) IsEmpty() bool {
	return len(a.Images) == 0 && len(a.SubAlbums) == 0
}

// ValidName reports whether name is acceptable for a new album.
// Empty and whitespace-only names are rejected.
func ValidName(name string) bool {
	return strings.TrimSpace(name) != ""
}
