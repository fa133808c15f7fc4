package model

import "testing"

// TestParseGenre verifies parsing accepts the fixed set and nothing else.
func TestParseGenre(t *testing.T) {
	t.Parallel()

	t.Run("accepts every enumerated genre", func(t *testing.T) {
		t.Parallel()

		for _, genre := range AllGenres() {
			parsed, err := ParseGenre(string(genre))
			if err != nil {
				t.Errorf("ParseGenre(%q) failed: %v", genre, err)
			}
			if parsed != genre {
				t.Errorf("ParseGenre(%q) = %q", genre, parsed)
			}
		}
	})

	t.Run("rejects unknown values", func(t *testing.T) {
		t.Parallel()

		for _, input := range []string{"", "saas", "SAAS_TOOL", "ecommerce"} {
			if _, err := ParseGenre(input); err == nil {
				t.Errorf("ParseGenre(%q) should fail", input)
			}
		}
	})
}

// TestGenreDisplayName verifies every genre has a human-readable name.
func TestGenreDisplayName(t *testing.T) {
	t.Parallel()

	for _, genre := range AllGenres() {
		name := genre.DisplayName()
		if name == "" || name == string(genre) {
			t.Errorf("genre %s has no display name", genre)
		}
	}

	// Unknown genres fall back to the raw value.
	if got := Genre("mystery").DisplayName(); got != "mystery" {
		t.Errorf("unknown genre display name = %q, want raw value", got)
	}
}

// TestAllGenresIsCopy verifies callers cannot corrupt the genre list.
func TestAllGenresIsCopy(t *testing.T) {
	t.Parallel()

	first := AllGenres()
	first[0] = Genre("mutated")

	if AllGenres()[0] != GenreSaaSTool {
		t.Error("AllGenres returned a shared slice")
	}
}
