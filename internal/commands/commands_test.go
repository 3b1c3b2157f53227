package commands

import "testing"

func TestSplitNamePath(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"", nil},
		{"/", nil},
		{"Trips", []string{"Trips"}},
		{"Trips/Summer", []string{"Trips", "Summer"}},
		{"/Trips/Summer/", []string{"Trips", "Summer"}},
		{"Trips//Summer", []string{"Trips", "Summer"}},
		{"  Trips / Summer ", []string{"Trips", "Summer"}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := splitNamePath(tt.input)
			if len(got) != len(tt.want) {
				t.Fatalf("splitNamePath(%q) = %v, want %v", tt.input, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("splitNamePath(%q)[%d] = %q, want %q", tt.input, i, got[i], tt.want[i])
				}
			}
		})
	}
}
