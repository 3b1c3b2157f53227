package library

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/pictree/pictree/internal/config"
	"github.com/pictree/pictree/internal/importer"
	"github.com/pictree/pictree/internal/logging"
	"github.com/pictree/pictree/internal/model"
	"github.com/pictree/pictree/internal/store"
	"github.com/pictree/pictree/internal/tree"
)

// State is the Manager's lifecycle state.
type State int

const (
	// StateInitializing means the initial load has not completed yet.
	// Editing is blocked.
	StateInitializing State = iota

	// StateReady means the in-memory forest is authoritative and edits
	// apply optimistically.
	StateReady

	// StateDegraded means the initial load failed after exhausting its
	// retries. Editing stays blocked until a manual Retry succeeds.
	StateDegraded
)

// String implements fmt.Stringer.
func (s State) String() string {
	switch s {
	case StateInitializing:
		return "initializing"
	case StateReady:
		return "ready"
	case StateDegraded:
		return "degraded"
	default:
		return "unknown"
	}
}

// ErrNotReady is returned by operations that require a loaded library.
var ErrNotReady = errors.New("library: not ready")

// Store is the persistence port the Manager writes through. The concrete
// implementation is the remote document-store client; tests substitute
// their own.
type Store interface {
	Fetch(ctx context.Context) (*store.Document, error)
	Save(ctx context.Context, docID string, forest model.Forest) error
}

// Manager owns the authoritative in-memory forest and the optimistic
// local / eventual remote consistency protocol around it.
//
// Every mutation applies to the in-memory forest immediately, before any
// network round trip, and schedules a
// background persist of the entire new forest. A persist that fails after
// its retries is absorbed: it is logged, the syncing flag clears, and the
// local forest is NOT rolled back. The local state is the source of truth
// for the session; the remote store may lag or miss an update.
//
// Known gap, kept deliberately: nothing sequences overlapping persists,
// so when responses arrive out of order the last COMPLETED write wins at
// the store even if it carried an older forest. The protocol offers no
// versioning to prevent this and none is bolted on here.
type Manager struct {
	store   Store
	docID   string
	retry   store.RetryConfig
	reducer *importer.Reducer
	onEvent func(Event)
	log     *slog.Logger

	mu      sync.RWMutex
	forest  model.Forest
	state   State
	loadErr error

	inflight atomic.Int32
	persists sync.WaitGroup
}

// NewManager creates a Manager persisting through st. The settings supply
// the document id, retry policy, and import behavior; onEvent receives
// progress events and may be nil.
func NewManager(st Store, settings *config.Settings, onEvent func(Event)) *Manager {
	var assets *importer.AssetStore
	if settings.AssetsPath != "" {
		assets = importer.NewAssetStore(settings.AssetsPath)
	}

	return &Manager{
		store:   st,
		docID:   settings.DocumentID,
		retry:   settings.ToRetryConfig(),
		reducer: importer.NewReducer(settings.ImportConcurrency, assets),
		onEvent: onEvent,
		log:     logging.New("library"),
		state:   StateInitializing,
	}
}

// Load performs the initial fetch of the forest from the remote store,
// with retries. On success the manager becomes ready; a store that has no
// document yet yields a fresh empty library, which is the normal first
// run. Exhausting the retries leaves the manager degraded with editing
// blocked, and the error is surfaced for the manual-retry UI.
func (m *Manager) Load(ctx context.Context) error {
	m.mu.Lock()
	m.state = StateInitializing
	m.loadErr = nil
	m.mu.Unlock()
	m.event(Event{Message: "Loading library...", Level: LevelVerbose})

	var doc *store.Document
	err := store.Retry(ctx, m.retry, func(ctx context.Context) error {
		var fetchErr error
		doc, fetchErr = m.store.Fetch(ctx)
		return fetchErr
	})

	switch {
	case err == nil:
		m.mu.Lock()
		m.forest = doc.Data
		m.state = StateReady
		m.mu.Unlock()
		m.event(Event{
			Message: fmt.Sprintf("Library loaded: %d albums, %d images", doc.Data.CountAlbums(), doc.Data.CountImages()),
			Level:   LevelInfo,
		})
		return nil

	case errors.Is(err, store.ErrNotFound):
		// First run: nothing persisted yet.
		m.mu.Lock()
		m.forest = model.Forest{}
		m.state = StateReady
		m.mu.Unlock()
		m.event(Event{Message: "Starting a new library", Level: LevelInfo})
		return nil

	default:
		m.mu.Lock()
		m.state = StateDegraded
		m.loadErr = err
		m.mu.Unlock()
		m.log.Error("initial load failed", "error", err)
		m.event(Event{Message: fmt.Sprintf("Loading library failed: %v", err), Level: LevelError})
		return err
	}
}

// Retry re-runs the initial load. It is the only way out of the degraded
// state and does nothing in any other state.
func (m *Manager) Retry(ctx context.Context) error {
	if m.State() != StateDegraded {
		return nil
	}
	return m.Load(ctx)
}

// State returns the current lifecycle state.
func (m *Manager) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

// LoadErr returns the error that sent the manager into the degraded
// state, or nil.
func (m *Manager) LoadErr() error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.loadErr
}

// Syncing reports whether at least one background persist is in flight.
func (m *Manager) Syncing() bool {
	return m.inflight.Load() > 0
}

// Forest returns the current authoritative forest. The returned value is
// never mutated in place (every edit installs a structurally new forest),
// so callers may hold and traverse it freely.
func (m *Manager) Forest() model.Forest {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.forest
}

// CreateAlbum adds an empty album named name at the level addressed by
// path. Returns false for validation no-ops (blank name, stale path) and
// when the library is not ready.
func (m *Manager) CreateAlbum(path []string, name string) bool {
	return m.apply(fmt.Sprintf("Created album %q", name), func(f model.Forest) model.Forest {
		return tree.CreateAlbum(f, path, name)
	})
}

// AddImages appends images to the album addressed by path.
func (m *Manager) AddImages(path []string, images []model.Image) bool {
	return m.apply(fmt.Sprintf("Added %d images", len(images)), func(f model.Forest) model.Forest {
		return tree.AddImages(f, path, images)
	})
}

// DeleteAlbum removes the album with the given id and its whole subtree.
func (m *Manager) DeleteAlbum(albumID string) bool {
	return m.apply("Deleted album", func(f model.Forest) model.Forest {
		return tree.DeleteAlbum(f, albumID)
	})
}

// DeleteImage removes the image with the given id.
func (m *Manager) DeleteImage(imageID string) bool {
	return m.apply("Deleted image", func(f model.Forest) model.Forest {
		return tree.DeleteImage(f, imageID)
	})
}

// Import merges an external file hierarchy into the album addressed by
// path and reports whether the forest changed. The manager's lock is held
// for the duration, so imports serialize with other edits; per-entry
// failures are absorbed by the reducer and only context cancellation
// aborts the import as a whole.
func (m *Manager) Import(ctx context.Context, path []string, entries []importer.Entry) (bool, error) {
	m.mu.Lock()
	if m.state != StateReady {
		m.mu.Unlock()
		return false, ErrNotReady
	}

	prev := m.forest
	next, err := m.reducer.Import(ctx, prev, path, entries)
	if err != nil {
		m.mu.Unlock()
		m.event(Event{Message: fmt.Sprintf("Import failed: %v", err), Level: LevelError})
		return false, err
	}
	if tree.Same(next, prev) {
		m.mu.Unlock()
		m.event(Event{Message: "Nothing to import", Level: LevelVerbose})
		return false, nil
	}
	m.forest = next
	m.mu.Unlock()

	m.event(Event{
		Message: fmt.Sprintf("Imported %d images, %d new albums",
			next.CountImages()-prev.CountImages(),
			next.CountAlbums()-prev.CountAlbums()),
		Level: LevelSuccess,
	})
	m.schedulePersist(next)
	return true, nil
}

// Wait blocks until every scheduled persist has finished, successfully or
// not. This is for process shutdown (the CLI must not exit mid-write); it
// is not part of the sync policy, which never waits.
func (m *Manager) Wait() {
	m.persists.Wait()
}

// apply runs one optimistic mutation: install the new forest under the
// lock, then schedule a background persist of it. A mutation the tree
// engine reports as a no-op is silently dropped, per the validation-noop
// policy.
func (m *Manager) apply(message string, mutate func(model.Forest) model.Forest) bool {
	m.mu.Lock()
	if m.state != StateReady {
		m.mu.Unlock()
		m.event(Event{Message: "Library not loaded, edit ignored", Level: LevelWarning})
		return false
	}

	next := mutate(m.forest)
	if tree.Same(next, m.forest) {
		m.mu.Unlock()
		m.log.Debug("mutation was a no-op", "action", message)
		return false
	}
	m.forest = next
	m.mu.Unlock()

	m.event(Event{Message: message, Level: LevelVerbose})
	m.schedulePersist(next)
	return true
}

// schedulePersist fires the background write of the whole forest. The
// persist owns its own context: once issued it cannot be cancelled, a
// later edit simply issues another independent persist of the newer
// forest. Failure is absorbed here and never propagates to the caller.
func (m *Manager) schedulePersist(forest model.Forest) {
	m.inflight.Add(1)
	m.persists.Add(1)

	go func() {
		defer m.persists.Done()
		defer m.inflight.Add(-1)

		err := store.Retry(context.Background(), m.retry, func(ctx context.Context) error {
			return m.store.Save(ctx, m.docID, forest)
		})
		if err != nil {
			m.log.Warn("background persist failed", "error", err)
			m.event(Event{Message: "Sync failed, changes kept locally", Level: LevelWarning})
			return
		}
		m.event(Event{Message: "Library synced", Level: LevelVerbose})
	}()
}

func (m *Manager) event(e Event) {
	if m.onEvent != nil {
		m.onEvent(e)
	}
}
