package importer

import (
	"os"
	"path/filepath"
)

// AssetStore keeps imported image bytes inside a library-owned directory,
// named by image id, so that image URLs stay valid after the source files
// move or disappear. The inbox watcher depends on this: it removes inbox
// files once ingested, which would break URLs that still pointed at them.
type AssetStore struct {
	dir string
}

// NewAssetStore creates a store rooted at dir. The directory is created
// lazily on the first Put.
func NewAssetStore(dir string) *AssetStore {
	return &AssetStore{dir: dir}
}

// Put writes one image's bytes under the given id, keeping the original
// file extension, and returns the URL the image node should carry.
func (s *AssetStore) Put(imageID, name string, data []byte) (string, error) {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return "", err
	}

	path := filepath.Join(s.dir, imageID+filepath.Ext(name))
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", err
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	return "file://" + filepath.ToSlash(abs), nil
}
