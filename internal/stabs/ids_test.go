package stabs

import "testing"

func TestSerieID(t *testing.T) {
	tests := []struct {
		identifier string
		want       string
		wantErr    bool
	}{
		{"HGB 1 14", "HGB_1_014", false},
		{"HGB 1 3", "HGB_1_003", false},
		{"HGB 2 117", "HGB_2_117", false},
		{"HGB 1", "", true},
		{"HGB 1 x", "", true},
	}

	for _, tt := range tests {
		got, err := SerieID(tt.identifier)
		if tt.wantErr {
			if err == nil {
				t.Errorf("SerieID(%q): expected error", tt.identifier)
			}
			continue
		}
		if err != nil {
			t.Errorf("SerieID(%q): unexpected error %v", tt.identifier, err)
			continue
		}
		if got != tt.want {
			t.Errorf("SerieID(%q) = %q, want %q", tt.identifier, got, tt.want)
		}
	}
}

func TestDossierID(t *testing.T) {
	tests := []struct {
		identifier string
		want       string
		wantErr    bool
	}{
		{"HGB 1 14 3", "HGB_1_014_003", false},
		{"HGB 1 14/3", "HGB_1_014_003", false},
		{"HGB 2 117 45", "HGB_2_117_045", false},
		{"HGB 1 14", "", true},
		{"HGB 1 14 x", "", true},
	}

	for _, tt := range tests {
		got, err := DossierID(tt.identifier)
		if tt.wantErr {
			if err == nil {
				t.Errorf("DossierID(%q): expected error", tt.identifier)
			}
			continue
		}
		if err != nil {
			t.Errorf("DossierID(%q): unexpected error %v", tt.identifier, err)
			continue
		}
		if got != tt.want {
			t.Errorf("DossierID(%q) = %q, want %q", tt.identifier, got, tt.want)
		}
	}
}
