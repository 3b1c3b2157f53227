package tree

import (
	"github.com/pictree/pictree/internal/id"
	"github.com/pictree/pictree/internal/model"
)

// The mutators in this file are pure: they never modify their input forest.
// Every album on the path from the root to the edited node is rebuilt as a
// fresh value; subtrees the edit does not touch are shared between the old
// and the new forest. A mutation that cannot apply (empty name, missing
// target) returns the input forest unchanged, the very same slice, so
// callers can detect a no-op by identity with Same.

// CreateAlbum returns a forest with a new empty album appended at the level
// addressed by path. An empty path appends a new root album. A name that is
// empty or whitespace-only is a validation no-op, as is a path that no
// longer resolves.
func CreateAlbum(forest model.Forest, path []string, name string) model.Forest {
	if !model.ValidName(name) {
		return forest
	}
	album := model.NewAlbum(id.New(), name)

	if len(path) == 0 {
		out := make(model.Forest, len(forest), len(forest)+1)
		copy(out, forest)
		return append(out, album)
	}

	out, ok := rewriteAt(forest, path, func(target *model.Album) *model.Album {
		clone := *target
		clone.SubAlbums = appendAlbum(target.SubAlbums, album)
		return &clone
	})
	if !ok {
		return forest
	}
	return out
}

// AddImages returns a forest with images appended to the album addressed by
// path, preserving their order. Images cannot be added at the library root,
// so an empty path is a no-op, as is an empty images slice or a path that
// no longer resolves.
func AddImages(forest model.Forest, path []string, images []model.Image) model.Forest {
	if len(path) == 0 || len(images) == 0 {
		return forest
	}

	out, ok := rewriteAt(forest, path, func(target *model.Album) *model.Album {
		clone := *target
		merged := make([]model.Image, len(target.Images), len(target.Images)+len(images))
		copy(merged, target.Images)
		clone.Images = append(merged, images...)
		return &clone
	})
	if !ok {
		return forest
	}
	return out
}

// DeleteAlbum returns a forest without the album carrying albumID, wherever
// it sits. The album's entire subtree goes with it: a match short-circuits
// further descent, because descendants are not independently addressable
// once their ancestor is gone. Deleting an id that does not exist returns
// the forest unchanged.
func DeleteAlbum(forest model.Forest, albumID string) model.Forest {
	out, found := deleteAlbumIn(forest, albumID)
	if !found {
		return forest
	}
	return out
}

func deleteAlbumIn(albums []*model.Album, albumID string) ([]*model.Album, bool) {
	out := make([]*model.Album, 0, len(albums))
	found := false
	for _, a := range albums {
		if a.ID == albumID {
			found = true
			continue
		}
		children, ok := deleteAlbumIn(a.SubAlbums, albumID)
		if ok {
			clone := *a
			clone.SubAlbums = children
			out = append(out, &clone)
			found = true
			continue
		}
		out = append(out, a)
	}
	if !found {
		return nil, false
	}
	return out, true
}

// DeleteImage returns a forest with the image carrying imageID removed from
// whichever album holds it. Deleting an id that does not exist returns the
// forest unchanged.
func DeleteImage(forest model.Forest, imageID string) model.Forest {
	out, found := deleteImageIn(forest, imageID)
	if !found {
		return forest
	}
	return out
}

func deleteImageIn(albums []*model.Album, imageID string) ([]*model.Album, bool) {
	out := make([]*model.Album, len(albums))
	found := false
	for i, a := range albums {
		images, imgFound := filterImages(a.Images, imageID)
		children, childFound := deleteImageIn(a.SubAlbums, imageID)
		if !imgFound && !childFound {
			out[i] = a
			continue
		}
		clone := *a
		if imgFound {
			clone.Images = images
		}
		if childFound {
			clone.SubAlbums = children
		}
		out[i] = &clone
		found = true
	}
	if !found {
		return nil, false
	}
	return out, true
}

func filterImages(images []model.Image, imageID string) ([]model.Image, bool) {
	for i, img := range images {
		if img.ID == imageID {
			out := make([]model.Image, 0, len(images)-1)
			out = append(out, images[:i]...)
			return append(out, images[i+1:]...), true
		}
	}
	return nil, false
}

// ReplaceAlbum returns a forest where the album addressed by path is
// replaced by album, rebuilding every ancestor on the path. The usual
// no-op rule applies when the path does not resolve. The replacement must
// not share nodes with any other part of the forest; callers splice in
// freshly built subtrees, never existing ones.
func ReplaceAlbum(forest model.Forest, path []string, album *model.Album) model.Forest {
	if len(path) == 0 || album == nil {
		return forest
	}
	out, ok := rewriteAt(forest, path, func(*model.Album) *model.Album {
		return album
	})
	if !ok {
		return forest
	}
	return out
}

// Same reports whether two forests are the identical value, which is how
// the mutators signal a no-op. It is an identity check, not a structural
// comparison.
func Same(a, b model.Forest) bool {
	if len(a) != len(b) {
		return false
	}
	if len(a) == 0 {
		return true
	}
	return &a[0] == &b[0]
}

// rewriteAt descends albums along path and replaces the album at the end of
// it with rewrite's result, rebuilding every ancestor on the way back up.
// Returns false when any id on the path does not resolve.
func rewriteAt(albums []*model.Album, path []string, rewrite func(*model.Album) *model.Album) ([]*model.Album, bool) {
	target := findByID(albums, path[0])
	if target == nil {
		return nil, false
	}

	var replacement *model.Album
	if len(path) == 1 {
		replacement = rewrite(target)
	} else {
		children, ok := rewriteAt(target.SubAlbums, path[1:], rewrite)
		if !ok {
			return nil, false
		}
		clone := *target
		clone.SubAlbums = children
		replacement = &clone
	}

	out := make([]*model.Album, len(albums))
	for i, a := range albums {
		if a == target {
			out[i] = replacement
		} else {
			out[i] = a
		}
	}
	return out, true
}

func appendAlbum(albums []*model.Album, album *model.Album) []*model.Album {
	out := make([]*model.Album, len(albums), len(albums)+1)
	copy(out, albums)
	return append(out, album)
}
