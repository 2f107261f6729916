package theme

import (
	"testing"

	"pizzacost/models"
)

func TestResolveKnownAndUnknownKeys(t *testing.T) {
	t.Parallel()

	if got := Resolve(" FLOUR "); got.Key != models.ThemeFlour {
		t.Fatalf("expected flour theme, got %q", got.Key)
	}
	if got := Resolve("nocturne"); got.Key != DefaultKey {
		t.Fatalf("expected fallback to default theme, got %q", got.Key)
	}
	if _, ok := Lookup("nocturne"); ok {
		t.Fatal("expected unknown theme lookup to fail")
	}
}

func TestOptionsCoverEveryTheme(t *testing.T) {
	t.Parallel()

	for _, option := range Options() {
		if !models.ValidTheme(option.Value) {
			t.Fatalf("option %q is not a valid model theme", option.Value)
		}
		if _, ok := Lookup(option.Value); !ok {
			t.Fatalf("option %q has no registered styles", option.Value)
		}
	}
}
