package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/onitasu/lp-ai-analyzer/internal/model"
)

// TestGenreFocusComplete verifies every genre has a focus line.
func TestGenreFocusComplete(t *testing.T) {
	t.Parallel()

	for _, genre := range model.AllGenres() {
		if genreFocus[genre] == "" {
			t.Errorf("genre %s has no focus line", genre)
		}
	}
}

// TestGenresCmd verifies the genres command lists every genre.
func TestGenresCmd(t *testing.T) {
	t.Parallel()

	cmd := NewGenresCmd()
	var buf bytes.Buffer
	cmd.SetOut(&buf)

	if err := cmd.Execute(); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	out := buf.String()
	for _, genre := range model.AllGenres() {
		if !strings.Contains(out, string(genre)) {
			t.Errorf("output missing genre %s", genre)
		}
		if !strings.Contains(out, genre.DisplayName()) {
			t.Errorf("output missing display name for %s", genre)
		}
	}
}
