package tree

import "github.com/pictree/pictree/internal/model"

// Resolution is the result of resolving a current path against a forest.
//
// Node is the album at the end of the path, or nil when the path is empty
// and the resolution addresses the library root. Siblings is the ordered
// list of albums visible at the resolved level: the node's sub-albums, or
// the forest itself at the root.
type Resolution struct {
	Node     *model.Album
	Siblings []*model.Album
}

// Resolve walks path from the forest root and returns the addressed level.
//
// Resolution fails (ok is false) as soon as any id in path cannot be found
// among the albums at the current level. Callers must then treat the path
// as stale and repair it with TruncatePath; a failed resolution is never an
// error condition surfaced to the user.
//
// Resolve is O(depth) and is re-run from the root on every call. It must
// not be cached: every mutation replaces the forest wholesale, and a cached
// resolution would keep nodes of a retired forest alive.
func Resolve(forest model.Forest, path []string) (Resolution, bool) {
	level := []*model.Album(forest)
	var node *model.Album
	for _, pathID := range path {
		next := findByID(level, pathID)
		if next == nil {
			return Resolution{}, false
		}
		node = next
		level = next.SubAlbums
	}
	return Resolution{Node: node, Siblings: level}, true
}

// TruncatePath returns the longest prefix of path that still resolves
// against forest. This is the repair policy for stale paths: when an
// ancestor album is deleted, the open path collapses to the deepest
// surviving level instead of failing.
//
// An empty result addresses the library root and is always valid.
func TruncatePath(forest model.Forest, path []string) []string {
	level := []*model.Album(forest)
	valid := make([]string, 0, len(path))
	for _, pathID := range path {
		next := findByID(level, pathID)
		if next == nil {
			break
		}
		valid = append(valid, pathID)
		level = next.SubAlbums
	}
	return valid
}

// PathByNames translates a chain of album names into a chain of album ids,
// descending from the forest root. Names are matched case-sensitively and
// the first match at each level wins; names are display strings and may be
// ambiguous, so id paths remain the canonical addressing form.
func PathByNames(forest model.Forest, names []string) ([]string, bool) {
	level := []*model.Album(forest)
	path := make([]string, 0, len(names))
	for _, name := range names {
		var next *model.Album
		for _, a := range level {
			if a.Name == name {
				next = a
				break
			}
		}
		if next == nil {
			return nil, false
		}
		path = append(path, next.ID)
		level = next.SubAlbums
	}
	return path, true
}

// findByID returns the album with the given id among albums, or nil.
func findByID(albums []*model.Album, id string) *model.Album {
	for _, a := range albums {
		if a.ID == id {
			return a
		}
	}
	return nil
}
