package team

import "testing"

func TestDisplayName(t *testing.T) {
	if got := (Team{Name: " Spain "}).DisplayName(); got != "Spain" {
		t.Fatalf("expected trimmed name, got %q", got)
	}
	if got := (Team{ID: 9}).DisplayName(); got != "TBD" {
		t.Fatalf("expected TBD for missing name, got %q", got)
	}
}
