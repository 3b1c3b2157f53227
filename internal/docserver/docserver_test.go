package docserver

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/pictree/pictree/internal/model"
	"github.com/pictree/pictree/internal/store"
)

func testServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(New(t.TempDir(), "library").Handler())
	t.Cleanup(srv.Close)
	return srv
}

func TestGetEmptyCollection(t *testing.T) {
	srv := testServer(t)

	resp, err := http.Get(srv.URL + "/library")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404 before any document exists", resp.StatusCode)
	}
}

func TestCreateThenGet(t *testing.T) {
	srv := testServer(t)

	body := `{"id":"primary","data":[{"id":"a1","name":"Trips","images":[],"subAlbums":[]}]}`
	resp, err := http.Post(srv.URL+"/library", "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create status = %d, want 201", resp.StatusCode)
	}

	client := store.NewClient(srv.URL, "library", 5*time.Second)
	doc, err := client.Fetch(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if doc.ID != "primary" || len(doc.Data) != 1 || doc.Data[0].Name != "Trips" {
		t.Errorf("fetched %+v, want the document just created", doc)
	}
}

func TestCreateRequiresID(t *testing.T) {
	srv := testServer(t)

	resp, err := http.Post(srv.URL+"/library", "application/json", strings.NewReader(`{"data":[]}`))
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400 for a document without id", resp.StatusCode)
	}
}

func TestPutUnknownID(t *testing.T) {
	srv := testServer(t)

	req, _ := http.NewRequest(http.MethodPut, srv.URL+"/library/ghost", strings.NewReader(`{"data":[]}`))
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404 so the client falls back to create", resp.StatusCode)
	}
}

func TestMalformedBody(t *testing.T) {
	srv := testServer(t)

	resp, err := http.Post(srv.URL+"/library", "application/json", strings.NewReader("{"))
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400 for malformed JSON", resp.StatusCode)
	}
}

// The server implements the whole protocol the client speaks: a full
// save/fetch cycle through store.Client must round-trip the forest,
// including the create-or-update fallback on first save.
func TestClientRoundTrip(t *testing.T) {
	srv := testServer(t)
	client := store.NewClient(srv.URL, "library", 5*time.Second)
	ctx := context.Background()

	if _, err := client.Fetch(ctx); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("fresh server: err = %v, want ErrNotFound", err)
	}

	album := model.NewAlbum("a1", "Trips")
	album.Images = []model.Image{{ID: "i1", Name: "x.jpg", SizeLabel: "1.0 KB"}}
	forest := model.Forest{album}

	// First save has nothing to update and must fall back to create.
	if err := client.Save(ctx, "primary", forest); err != nil {
		t.Fatal(err)
	}

	doc, err := client.Fetch(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(doc.Data) != 1 || len(doc.Data[0].Images) != 1 {
		t.Fatalf("fetched %+v, want the saved forest back", doc.Data)
	}

	// Second save hits the update path and replaces the document wholesale.
	if err := client.Save(ctx, "primary", model.Forest{}); err != nil {
		t.Fatal(err)
	}
	doc, err = client.Fetch(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(doc.Data) != 0 {
		t.Errorf("fetched %+v, want the emptied forest", doc.Data)
	}
}
