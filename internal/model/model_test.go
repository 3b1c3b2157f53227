package model

import (
	"encoding/json"
	"testing"
)

func sampleForest() Forest {
	leaf := NewAlbum("leaf", "Leaf")
	leaf.Images = []Image{{ID: "i2", Name: "b.jpg"}}

	root := NewAlbum("root", "Root")
	root.Images = []Image{{ID: "i1", Name: "a.jpg"}}
	root.SubAlbums = []*Album{leaf}

	return Forest{root, NewAlbum("other", "Other")}
}

func TestWalkOrder(t *testing.T) {
	var visited []string
	sampleForest().Walk(func(a *Album) bool {
		visited = append(visited, a.ID)
		return true
	})

	want := []string{"root", "leaf", "other"}
	if len(visited) != len(want) {
		t.Fatalf("visited %v, want %v", visited, want)
	}
	for i := range want {
		if visited[i] != want[i] {
			t.Fatalf("visited %v, want depth-first %v", visited, want)
		}
	}
}

func TestWalkEarlyStop(t *testing.T) {
	count := 0
	sampleForest().Walk(func(*Album) bool {
		count++
		return false
	})
	if count != 1 {
		t.Errorf("visited %d albums after stop, want 1", count)
	}
}

func TestCounts(t *testing.T) {
	f := sampleForest()
	if got := f.CountAlbums(); got != 3 {
		t.Errorf("CountAlbums = %d, want 3", got)
	}
	if got := f.CountImages(); got != 2 {
		t.Errorf("CountImages = %d, want 2", got)
	}
}

func TestFindAlbum(t *testing.T) {
	f := sampleForest()
	if got := f.FindAlbum("leaf"); got == nil || got.Name != "Leaf" {
		t.Errorf("FindAlbum(leaf) = %v, want the nested album", got)
	}
	if got := f.FindAlbum("ghost"); got != nil {
		t.Errorf("FindAlbum(ghost) = %v, want nil", got)
	}
}

func TestCloneIsDeep(t *testing.T) {
	f := sampleForest()
	c := f.Clone()

	c[0].Name = "changed"
	c[0].Images[0].Name = "changed.jpg"
	c[0].SubAlbums[0].Images = nil

	if f[0].Name != "Root" {
		t.Error("clone shares the album value with the original")
	}
	if f[0].Images[0].Name != "a.jpg" {
		t.Error("clone shares the images slice with the original")
	}
	if len(f[0].SubAlbums[0].Images) != 1 {
		t.Error("clone shares nested albums with the original")
	}
}

func TestIsEmpty(t *testing.T) {
	a := NewAlbum("a", "A")
	if !a.IsEmpty() {
		t.Error("a fresh album is empty")
	}
	a.Images = append(a.Images, Image{ID: "i"})
	if a.IsEmpty() {
		t.Error("an album with an image is not empty")
	}
}

func TestValidName(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"Trips", true},
		{" padded ", true},
		{"", false},
		{"   ", false},
		{"\t\n", false},
	}
	for _, tt := range tests {
		if got := ValidName(tt.name); got != tt.want {
			t.Errorf("ValidName(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

// The wire shape is fixed: consumers of the persisted document rely on
// these exact keys.
func TestAlbumJSONShape(t *testing.T) {
	album := NewAlbum("a1", "Trips")
	album.Images = []Image{{ID: "i1", Name: "x.jpg", URL: "file:///x.jpg", SizeLabel: "1.0 KB"}}

	data, err := json.Marshal(album)
	if err != nil {
		t.Fatal(err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{"id", "name", "images", "subAlbums"} {
		if _, ok := decoded[key]; !ok {
			t.Errorf("marshalled album misses key %q", key)
		}
	}

	var back Album
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatal(err)
	}
	if back.ID != "a1" || len(back.Images) != 1 || back.Images[0].URL != "file:///x.jpg" {
		t.Errorf("round-trip lost data: %+v", back)
	}
}
