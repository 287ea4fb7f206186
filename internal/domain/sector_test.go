package domain

import "testing"

func TestParseSectorAcceptsAllDeclaredSectors(t *testing.T) {
	for _, sector := range Sectors() {
		parsed, ok := ParseSector(string(sector))
		if !ok {
			t.Fatalf("expected %q to parse", sector)
		}
		if parsed != sector {
			t.Fatalf("expected %q, got %q", sector, parsed)
		}
	}
}

func TestParseSectorRejectsUnknownValues(t *testing.T) {
	for _, raw := range []string{"", "digizign", "MARKETING", "DIGIZIGN "} {
		if _, ok := ParseSector(raw); ok {
			t.Fatalf("expected %q to be rejected", raw)
		}
	}
}

func TestParseTaskStatusRejectsUnknownValues(t *testing.T) {
	if _, ok := ParseTaskStatus("DONE"); ok {
		t.Fatal("expected DONE to be rejected")
	}
	if _, ok := ParseTaskStatus("pending"); ok {
		t.Fatal("expected lowercase value to be rejected")
	}
}
