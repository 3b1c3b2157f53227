package model

// Forest is the top-level ordered collection of root albums: the library.
type Forest []*Album

// Walk visits every album in the forest depth-first, parents before
// children. If fn returns false the walk stops.
func (f Forest) Walk(fn func(*Album) bool) {
	walk(f, fn)
}

func walk(albums []*Album, fn func(*Album) bool) bool {
	for _, a := range albums {
		if !fn(a) {
			return false
		}
		if !walk(a.SubAlbums, fn) {
			return false
		}
	}
	return true
}

// CountAlbums returns the number of albums at any depth.
func (f Forest) CountAlbums() int {
	n := 0
	f.Walk(func(*Album) bool {
		n++
		return true
	})
	return n
}

// CountImages returns the number of images at any depth.
func (f Forest) CountImages() int {
	n := 0
	f.Walk(func(a *Album) bool {
		n += len(a.Images)
		return true
	})
	return n
}

// FindAlbum returns the album with the given id, at any depth,
// or nil if no such album exists.
func (f Forest) FindAlbum(id string) *Album {
	var found *Album
	f.Walk(func(a *Album) bool {
		if a.ID == id {
			found = a
			return false
		}
		return true
	})
	return found
}
