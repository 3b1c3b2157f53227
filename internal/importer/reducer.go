package importer

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/pictree/pictree/internal/id"
	"github.com/pictree/pictree/internal/logging"
	"github.com/pictree/pictree/internal/model"
	"github.com/pictree/pictree/internal/tree"
)

// Reducer converts an externally supplied file hierarchy into album and
// image nodes, merging into the existing tree instead of duplicating it.
//
// Merge semantics per directory level:
//
//   - an image file becomes a new Image appended to the target album
//   - a non-image file is silently skipped, not treated as an error
//   - a directory is matched by name (case-sensitive, exact) against the
//     target's existing sub-albums; a match merges into that album, no
//     match creates a fresh empty album with a new id
//
// Repeated imports of the same folder therefore accumulate images inside
// one album rather than growing a second folder of the same name.
type Reducer struct {
	newID       func() string
	concurrency int
	assets      *AssetStore
	log         *slog.Logger
}

// NewReducer creates a Reducer. concurrency bounds how many files of one
// directory are read at a time; assets may be nil, in which case images
// reference their source location instead of a library-managed copy.
func NewReducer(concurrency int, assets *AssetStore) *Reducer {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Reducer{
		newID:       id.New,
		concurrency: concurrency,
		assets:      assets,
		log:         logging.New("importer"),
	}
}

// Import merges entries into the album addressed by path and returns the
// rewritten forest. The input forest is never modified: the target subtree
// is deep-copied, merged into, and spliced back, so imported nodes never
// alias nodes of the previous forest and no album can end up under itself.
//
// An empty path imports at the library root, where only directories can
// land, since the root holds no images. A path that no longer resolves, and an
// import whose entries all end up skipped, are validation no-ops returning
// the forest unchanged. Per-entry failures
// (unreadable files, unlistable directories) are logged and skipped; only
// context cancellation aborts the whole import.
func (r *Reducer) Import(ctx context.Context, forest model.Forest, path []string, entries []Entry) (model.Forest, error) {
	if len(entries) == 0 {
		return forest, nil
	}

	if len(path) == 0 {
		roots := []*model.Album(forest.Clone())
		if err := r.reduce(ctx, container{subAlbums: &roots}, entries); err != nil {
			return forest, err
		}
		next := model.Forest(roots)
		if !grew(forest, next) {
			return forest, nil
		}
		return next, nil
	}

	res, ok := tree.Resolve(forest, path)
	if !ok {
		return forest, nil
	}

	clone := res.Node.Clone()
	if err := r.reduce(ctx, container{images: &clone.Images, subAlbums: &clone.SubAlbums}, entries); err != nil {
		return forest, err
	}
	if !grew(model.Forest{res.Node}, model.Forest{clone}) {
		return forest, nil
	}
	return tree.ReplaceAlbum(forest, path, clone), nil
}

// container is one mutable merge target: an album's two child collections,
// or the forest itself at the root. A nil images slot marks a level that
// cannot hold images.
type container struct {
	images    *[]model.Image
	subAlbums *[]*model.Album
}

// reduce merges one level of entries into c, recursing into directories.
// Depth is bounded only by the call stack; the entry abstraction cannot
// produce cycles, so no cycle guard is needed.
func (r *Reducer) reduce(ctx context.Context, c container, entries []Entry) error {
	loaded, err := r.loadFiles(ctx, entries)
	if err != nil {
		return err
	}

	for i, entry := range entries {
		if err := ctx.Err(); err != nil {
			return err
		}

		if entry.IsDir() {
			target := findByName(*c.subAlbums, entry.Name())
			if target == nil {
				target = model.NewAlbum(r.newID(), entry.Name())
				*c.subAlbums = append(*c.subAlbums, target)
			}
			children, err := entry.Children(ctx)
			if err != nil {
				r.log.Warn("listing import directory", "name", entry.Name(), "error", err)
				continue
			}
			if err := r.reduce(ctx, container{images: &target.Images, subAlbums: &target.SubAlbums}, children); err != nil {
				return err
			}
			continue
		}

		if img := loaded[i]; img != nil {
			if c.images == nil {
				r.log.Warn("skipping file at library root", "name", entry.Name())
				continue
			}
			*c.images = append(*c.images, *img)
		}
	}
	return nil
}

// loadFiles reads and classifies the file entries of one level, a bounded
// number at a time. Results keep the host order via their index; nil slots
// are directories, unreadable files, and non-images.
func (r *Reducer) loadFiles(ctx context.Context, entries []Entry) ([]*model.Image, error) {
	results := make([]*model.Image, len(entries))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.concurrency)

	for i, entry := range entries {
		if entry.IsDir() {
			continue
		}
		g.Go(func() error {
			data, err := entry.Open(gctx)
			if err != nil {
				r.log.Warn("reading import file", "name", entry.Name(), "error", err)
				return nil
			}
			if !sniffImage(data) {
				r.log.Debug("skipping non-image file", "name", entry.Name())
				return nil
			}

			img := model.Image{
				ID:        r.newID(),
				Name:      entry.Name(),
				SizeLabel: sizeLabel(len(data)),
				Timestamp: time.Now(),
			}
			img.URL = r.imageURL(entry, img.ID, data)
			results[i] = &img
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, ctx.Err()
}

// imageURL decides what reference the new image carries: a copy in the
// asset store when one is configured, the entry's own source location
// otherwise, or an empty placeholder when neither is available.
func (r *Reducer) imageURL(entry Entry, imageID string, data []byte) string {
	if r.assets != nil {
		url, err := r.assets.Put(imageID, entry.Name(), data)
		if err == nil {
			return url
		}
		r.log.Warn("storing asset", "name", entry.Name(), "error", err)
	}
	if src, ok := entry.(Sourced); ok {
		return src.SourceURL()
	}
	return ""
}

// grew reports whether the merge actually added anything. The reducer
// only ever appends albums and images, so node counts decide it exactly.
// An import that ingests nothing (all entries skipped) must be a no-op
// returning the identical forest, not a structurally equal copy.
func grew(before, after model.Forest) bool {
	return after.CountAlbums() > before.CountAlbums() ||
		after.CountImages() > before.CountImages()
}

func findByName(albums []*model.Album, name string) *model.Album {
	for _, a := range albums {
		if a.Name == name {
			return a
		}
	}
	return nil
}
