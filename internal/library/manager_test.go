package library

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"sync"
	"testing"

	"github.com/pictree/pictree/internal/config"
	"github.com/pictree/pictree/internal/importer"
	"github.com/pictree/pictree/internal/model"
	"github.com/pictree/pictree/internal/store"
	"github.com/pictree/pictree/internal/tree"
)

// fakeStore is an in-memory Store with scriptable failures.
type fakeStore struct {
	mu       sync.Mutex
	doc      *store.Document
	fetchErr error
	saveErr  error
	saves    []model.Forest
}

func (s *fakeStore) Fetch(ctx context.Context) (*store.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fetchErr != nil {
		return nil, s.fetchErr
	}
	if s.doc == nil {
		return nil, store.ErrNotFound
	}
	return s.doc, nil
}

func (s *fakeStore) Save(ctx context.Context, docID string, forest model.Forest) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saveErr != nil {
		return s.saveErr
	}
	s.doc = &store.Document{ID: docID, Data: forest}
	s.saves = append(s.saves, forest)
	return nil
}

func (s *fakeStore) savedForests() []model.Forest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.Forest(nil), s.saves...)
}

// testSettings keeps retries fast and disables the asset store.
func testSettings() *config.Settings {
	return &config.Settings{
		DocumentID:        "primary",
		MaxRetries:        2,
		RetryCooldown:     0.001,
		RetryExponent:     1.0,
		ImportConcurrency: 2,
	}
}

func readyManager(t *testing.T, st *fakeStore, events func(Event)) *Manager {
	t.Helper()
	m := NewManager(st, testSettings(), events)
	if err := m.Load(context.Background()); err != nil {
		t.Fatal(err)
	}
	if m.State() != StateReady {
		t.Fatalf("state = %v, want ready", m.State())
	}
	return m
}

func TestLoadEmptyStore(t *testing.T) {
	m := readyManager(t, &fakeStore{}, nil)
	if len(m.Forest()) != 0 {
		t.Errorf("a store without a document must yield an empty library, got %v", m.Forest())
	}
}

func TestLoadExistingDocument(t *testing.T) {
	st := &fakeStore{doc: &store.Document{
		ID:   "primary",
		Data: model.Forest{model.NewAlbum("a1", "Trips")},
	}}
	m := readyManager(t, st, nil)

	forest := m.Forest()
	if len(forest) != 1 || forest[0].Name != "Trips" {
		t.Errorf("forest = %v, want the stored document", forest)
	}
}

func TestLoadFailureDegrades(t *testing.T) {
	boom := errors.New("network down")
	st := &fakeStore{fetchErr: boom}
	m := NewManager(st, testSettings(), nil)

	err := m.Load(context.Background())
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want the fetch failure", err)
	}
	if m.State() != StateDegraded {
		t.Fatalf("state = %v, want degraded", m.State())
	}
	if !errors.Is(m.LoadErr(), boom) {
		t.Errorf("LoadErr = %v, want the fetch failure", m.LoadErr())
	}

	// Editing stays blocked.
	if m.CreateAlbum(nil, "Trips") {
		t.Error("a degraded manager must reject edits")
	}
	if _, err := m.Import(context.Background(), nil, []importer.Entry{}); !errors.Is(err, ErrNotReady) {
		t.Errorf("Import err = %v, want ErrNotReady", err)
	}
}

// Retry is the only way out of the degraded state.
func TestRetryRecovers(t *testing.T) {
	boom := errors.New("network down")
	st := &fakeStore{fetchErr: boom}
	m := NewManager(st, testSettings(), nil)
	m.Load(context.Background())

	st.mu.Lock()
	st.fetchErr = nil
	st.mu.Unlock()

	if err := m.Retry(context.Background()); err != nil {
		t.Fatal(err)
	}
	if m.State() != StateReady {
		t.Fatalf("state = %v, want ready after successful retry", m.State())
	}
	if !m.CreateAlbum(nil, "Trips") {
		t.Error("edits must be accepted after recovery")
	}
	m.Wait()
}

func TestRetryInReadyStateIsNoOp(t *testing.T) {
	st := &fakeStore{}
	m := readyManager(t, st, nil)
	m.CreateAlbum(nil, "Trips")
	m.Wait()

	if err := m.Retry(context.Background()); err != nil {
		t.Fatal(err)
	}
	if len(m.Forest()) != 1 {
		t.Error("Retry outside the degraded state must not reload and discard local edits")
	}
}

// Edits apply to the in-memory forest immediately and each schedules a
// whole-forest persist.
func TestOptimisticApply(t *testing.T) {
	st := &fakeStore{}
	m := readyManager(t, st, nil)

	if !m.CreateAlbum(nil, "Trips") {
		t.Fatal("CreateAlbum rejected")
	}
	forest := m.Forest()
	if len(forest) != 1 || forest[0].Name != "Trips" {
		t.Fatalf("forest = %v, want Trips visible before any persist completes", forest)
	}

	// Serialize the two persists so the saved order is deterministic.
	m.Wait()

	albumID := forest[0].ID
	if !m.AddImages([]string{albumID}, []model.Image{{ID: "i1", Name: "x.jpg"}}) {
		t.Fatal("AddImages rejected")
	}

	m.Wait()
	saves := st.savedForests()
	if len(saves) != 2 {
		t.Fatalf("got %d persists, want one per edit", len(saves))
	}
	last := saves[len(saves)-1]
	if last.CountImages() != 1 {
		t.Errorf("last persisted forest has %d images, want the full newest forest", last.CountImages())
	}
}

func TestNoOpMutationsDoNotPersist(t *testing.T) {
	st := &fakeStore{}
	m := readyManager(t, st, nil)

	if m.CreateAlbum(nil, "   ") {
		t.Error("blank name must be a no-op")
	}
	if m.DeleteAlbum("ghost") {
		t.Error("deleting an unknown id must be a no-op")
	}
	if m.DeleteImage("ghost") {
		t.Error("deleting an unknown image must be a no-op")
	}
	if m.AddImages(nil, []model.Image{{ID: "i1"}}) {
		t.Error("adding images at the root must be a no-op")
	}

	m.Wait()
	if len(st.savedForests()) != 0 {
		t.Error("no-ops must not schedule persists")
	}
}

// A persist that fails after its retries is absorbed: the local forest
// keeps the change and no rollback happens.
func TestPersistFailureIsAbsorbed(t *testing.T) {
	album := model.NewAlbum("a1", "Trips")
	album.Images = []model.Image{{ID: "i1", Name: "x.jpg"}}
	st := &fakeStore{doc: &store.Document{ID: "primary", Data: model.Forest{album}}}

	var mu sync.Mutex
	var warnings []string
	m := readyManager(t, st, func(e Event) {
		if e.Level == LevelWarning {
			mu.Lock()
			warnings = append(warnings, e.Message)
			mu.Unlock()
		}
	})

	st.mu.Lock()
	st.saveErr = errors.New("store offline")
	st.mu.Unlock()

	if !m.DeleteImage("i1") {
		t.Fatal("DeleteImage rejected")
	}
	m.Wait()

	// Still deleted locally.
	if m.Forest().CountImages() != 0 {
		t.Error("failed persist must not roll back the local edit")
	}
	if m.Syncing() {
		t.Error("the syncing flag must clear after the persist gives up")
	}
	mu.Lock()
	defer mu.Unlock()
	if len(warnings) == 0 {
		t.Error("an absorbed persist failure must surface a warning event")
	}
}

func TestImport(t *testing.T) {
	st := &fakeStore{}
	m := readyManager(t, st, nil)
	m.CreateAlbum(nil, "Trips")
	albumID := m.Forest()[0].ID
	m.Wait()

	changed, err := m.Import(context.Background(), []string{albumID}, []importer.Entry{
		&stubDir{name: "Rome", files: map[string][]byte{"a.png": pngBytes(t)}},
	})
	if err != nil {
		t.Fatal(err)
	}
	if !changed {
		t.Fatal("import of a new folder must change the forest")
	}

	forest := m.Forest()
	if forest.CountImages() != 1 {
		t.Errorf("CountImages = %d, want 1", forest.CountImages())
	}
	res, ok := tree.Resolve(forest, []string{albumID})
	if !ok || len(res.Node.SubAlbums) != 1 || res.Node.SubAlbums[0].Name != "Rome" {
		t.Errorf("want a Rome sub-album under Trips, got %v", res.Node.SubAlbums)
	}

	m.Wait()
	saves := st.savedForests()
	if len(saves) == 0 || saves[len(saves)-1].CountImages() != 1 {
		t.Error("the imported forest must be persisted")
	}
}

func TestImportNothingIngestible(t *testing.T) {
	st := &fakeStore{}
	m := readyManager(t, st, nil)
	m.CreateAlbum(nil, "Trips")
	albumID := m.Forest()[0].ID
	m.Wait()
	before := len(st.savedForests())

	changed, err := m.Import(context.Background(), []string{albumID}, []importer.Entry{
		&stubFile{name: "notes.txt", data: []byte("not an image")},
	})
	if err != nil {
		t.Fatal(err)
	}
	if changed {
		t.Error("an import that ingests nothing must report no change")
	}

	m.Wait()
	if len(st.savedForests()) != before {
		t.Error("a no-change import must not schedule a persist")
	}
}

// The full session scenario: create, fill, delete, all optimistic, with
// the final persist carrying the final forest.
func TestSessionScenario(t *testing.T) {
	st := &fakeStore{}
	m := readyManager(t, st, nil)

	if !m.CreateAlbum(nil, "Trip") {
		t.Fatal("create rejected")
	}
	albumID := m.Forest()[0].ID
	m.Wait()

	if !m.AddImages([]string{albumID}, []model.Image{
		{ID: "i1", Name: "a.jpg"},
		{ID: "i2", Name: "b.jpg"},
	}) {
		t.Fatal("add rejected")
	}
	m.Wait()
	if m.Forest().CountImages() != 2 {
		t.Fatalf("CountImages = %d, want 2", m.Forest().CountImages())
	}

	if !m.DeleteAlbum(albumID) {
		t.Fatal("delete rejected")
	}
	if len(m.Forest()) != 0 {
		t.Fatalf("forest = %v, want empty after deleting the only album", m.Forest())
	}

	m.Wait()
	saves := st.savedForests()
	if len(saves) != 3 {
		t.Fatalf("got %d persists, want one per edit", len(saves))
	}
	if len(saves[len(saves)-1]) != 0 {
		t.Error("the final persist must carry the empty forest")
	}
}

// stubFile and stubDir are minimal import entries for manager tests.
type stubFile struct {
	name string
	data []byte
}

func (f *stubFile) Name() string                         { return f.name }
func (f *stubFile) IsDir() bool                          { return false }
func (f *stubFile) Open(context.Context) ([]byte, error) { return f.data, nil }
func (f *stubFile) Children(context.Context) ([]importer.Entry, error) {
	return nil, nil
}

type stubDir struct {
	name  string
	files map[string][]byte
}

func (d *stubDir) Name() string                         { return d.name }
func (d *stubDir) IsDir() bool                          { return true }
func (d *stubDir) Open(context.Context) ([]byte, error) { return nil, nil }
func (d *stubDir) Children(context.Context) ([]importer.Entry, error) {
	out := make([]importer.Entry, 0, len(d.files))
	for name, data := range d.files {
		out = append(out, &stubFile{name: name, data: data})
	}
	return out, nil
}

func pngBytes(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 1, 1))); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}
