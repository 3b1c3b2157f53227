package model

import "time"

// Image is a leaf node referencing one displayable picture.
type Image struct {
	// ID is an opaque identifier, unique across the whole forest.
	ID string `json:"id"`

	// Name is the original file name. It may collide with siblings.
	Name string `json:"name"`

	// URL is an opaque reference to the renderable bytes. A local file
	// reference, a remote URL, or a placeholder are all legal values;
	// the tree engine never interprets it.
	URL string `json:"url"`

	// SizeLabel is a human-readable size such as "2.4 MB".
	SizeLabel string `json:"sizeLabel"`

	// Timestamp records when the image was added, if known.
	Timestamp time.Time `json:"timestamp,omitzero"`
}
