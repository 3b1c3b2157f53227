package tree

import (
	"testing"

	"github.com/pictree/pictree/internal/model"
)

// testForest builds:
//
//	trips "Trips"
//	  summer "Summer"  [s1.jpg s2.jpg]
//	  winter "Winter"
//	pets "Pets"        [p1.jpg]
func testForest() model.Forest {
	summer := model.NewAlbum("summer", "Summer")
	summer.Images = []model.Image{
		{ID: "s1", Name: "s1.jpg"},
		{ID: "s2", Name: "s2.jpg"},
	}
	winter := model.NewAlbum("winter", "Winter")

	trips := model.NewAlbum("trips", "Trips")
	trips.SubAlbums = []*model.Album{summer, winter}

	pets := model.NewAlbum("pets", "Pets")
	pets.Images = []model.Image{{ID: "p1", Name: "p1.jpg"}}

	return model.Forest{trips, pets}
}

func TestResolve(t *testing.T) {
	forest := testForest()

	tests := []struct {
		name         string
		path         []string
		wantOK       bool
		wantNode     string // album id, "" for root
		wantSiblings int
	}{
		{"root", nil, true, "", 2},
		{"top level", []string{"trips"}, true, "trips", 2},
		{"nested", []string{"trips", "summer"}, true, "summer", 0},
		{"unknown id", []string{"nope"}, false, "", 0},
		{"stale tail", []string{"trips", "nope"}, false, "", 0},
		{"wrong level", []string{"summer"}, false, "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, ok := Resolve(forest, tt.path)
			if ok != tt.wantOK {
				t.Fatalf("Resolve(%v) ok = %v, want %v", tt.path, ok, tt.wantOK)
			}
			if !ok {
				return
			}
			gotNode := ""
			if res.Node != nil {
				gotNode = res.Node.ID
			}
			if gotNode != tt.wantNode {
				t.Errorf("Resolve(%v) node = %q, want %q", tt.path, gotNode, tt.wantNode)
			}
			if len(res.Siblings) != tt.wantSiblings {
				t.Errorf("Resolve(%v) siblings = %d, want %d", tt.path, len(res.Siblings), tt.wantSiblings)
			}
		})
	}
}

func TestResolveReturnsLiveNodes(t *testing.T) {
	forest := testForest()
	res, ok := Resolve(forest, []string{"trips", "summer"})
	if !ok {
		t.Fatal("Resolve failed")
	}
	if res.Node != forest[0].SubAlbums[0] {
		t.Error("Resolve should return the forest's own node, not a copy")
	}
}

func TestTruncatePath(t *testing.T) {
	forest := testForest()

	tests := []struct {
		name string
		path []string
		want int // surviving prefix length
	}{
		{"empty", nil, 0},
		{"fully valid", []string{"trips", "summer"}, 2},
		{"stale leaf", []string{"trips", "gone"}, 1},
		{"stale root", []string{"gone", "summer"}, 0},
		{"stale middle", []string{"trips", "gone", "summer"}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TruncatePath(forest, tt.path)
			if len(got) != tt.want {
				t.Fatalf("TruncatePath(%v) = %v, want prefix of length %d", tt.path, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.path[i] {
					t.Errorf("TruncatePath(%v)[%d] = %q, want %q", tt.path, i, got[i], tt.path[i])
				}
			}
		})
	}
}

// Deleting an ancestor while a descendant is open must collapse the open
// path to the deepest surviving level.
func TestTruncatePathAfterAncestorDelete(t *testing.T) {
	forest := testForest()
	open := []string{"trips", "summer"}

	forest = DeleteAlbum(forest, "trips")

	repaired := TruncatePath(forest, open)
	if len(repaired) != 0 {
		t.Fatalf("expected path to collapse to root, got %v", repaired)
	}
	if _, ok := Resolve(forest, repaired); !ok {
		t.Error("repaired path must always resolve")
	}
}

func TestPathByNames(t *testing.T) {
	forest := testForest()

	tests := []struct {
		name   string
		names  []string
		want   []string
		wantOK bool
	}{
		{"empty", nil, []string{}, true},
		{"top level", []string{"Trips"}, []string{"trips"}, true},
		{"nested", []string{"Trips", "Summer"}, []string{"trips", "summer"}, true},
		{"unknown", []string{"Trips", "Autumn"}, nil, false},
		{"case sensitive", []string{"trips"}, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := PathByNames(forest, tt.names)
			if ok != tt.wantOK {
				t.Fatalf("PathByNames(%v) ok = %v, want %v", tt.names, ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if len(got) != len(tt.want) {
				t.Fatalf("PathByNames(%v) = %v, want %v", tt.names, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("PathByNames(%v)[%d] = %q, want %q", tt.names, i, got[i], tt.want[i])
				}
			}
		})
	}
}

// Names are display strings and may repeat at one level; the first match
// wins, so id paths stay the canonical addressing form.
func TestPathByNamesAmbiguous(t *testing.T) {
	forest := model.Forest{
		model.NewAlbum("a1", "Dup"),
		model.NewAlbum("a2", "Dup"),
	}
	got, ok := PathByNames(forest, []string{"Dup"})
	if !ok || len(got) != 1 || got[0] != "a1" {
		t.Errorf("PathByNames = %v, %v; want first match [a1]", got, ok)
	}
}
