package userid

import (
	"strings"
	"testing"
)

func TestGenerateUsesPrefixAndSixHexChars(t *testing.T) {
	gen := New("ZYL")

	id := gen.Generate()
	if !strings.HasPrefix(id, "ZYL") {
		t.Fatalf("expected ZYL prefix, got %q", id)
	}

	suffix := strings.TrimPrefix(id, "ZYL")
	if len(suffix) != 6 {
		t.Fatalf("expected 6-char suffix, got %q", suffix)
	}
	for _, r := range suffix {
		if !strings.ContainsRune("0123456789ABCDEF", r) {
			t.Fatalf("expected uppercase hex suffix, got %q", suffix)
		}
	}
}

func TestGenerateProducesDistinctIDs(t *testing.T) {
	gen := New("ZYL")

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := gen.Generate()
		if seen[id] {
			t.Fatalf("duplicate id generated: %q", id)
		}
		seen[id] = true
	}
}
