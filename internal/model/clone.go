package model

// Clone returns a deep copy of the album and its entire subtree. The copy
// shares nothing with the original, so it may be freely modified while the
// original forest stays immutable.
func (a *Album) Clone() *Album {
	clone := *a
	clone.Images = make([]Image, len(a.Images))
	copy(clone.Images, a.Images)
	clone.SubAlbums = make([]*Album, len(a.SubAlbums))
	for i, sub := range a.SubAlbums {
		clone.SubAlbums[i] = sub.Clone()
	}
	return &clone
}

// Clone returns a deep copy of the whole forest.
func (f Forest) Clone() Forest {
	out := make(Forest, len(f))
	for i, a := range f {
		out[i] = a.Clone()
	}
	return out
}
