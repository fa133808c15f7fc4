package capture

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// pngHeader is the 8-byte PNG signature; enough for MIME sniffing.
var pngHeader = []byte{0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a}

// writeTestPNG writes a minimal PNG file into a temp dir.
func writeTestPNG(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "page.png")
	if err := os.WriteFile(path, pngHeader, 0600); err != nil {
		t.Fatal(err)
	}
	return path
}

// TestLoadScreenshot covers file loading and MIME sniffing.
func TestLoadScreenshot(t *testing.T) {
	t.Parallel()

	t.Run("PNG is sniffed as image/png", func(t *testing.T) {
		t.Parallel()

		path := writeTestPNG(t)

		data, mimeType, metadata, err := LoadScreenshot(path)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(data) == 0 {
			t.Error("expected image bytes")
		}
		if mimeType != "image/png" {
			t.Errorf("mimeType = %q, want image/png", mimeType)
		}
		// PNG screenshots carry no EXIF block; metadata is empty, not nil.
		if metadata == nil {
			t.Error("expected non-nil metadata map")
		}
	})

	t.Run("missing file fails", func(t *testing.T) {
		t.Parallel()

		if _, _, _, err := LoadScreenshot(filepath.Join(t.TempDir(), "nope.png")); err == nil {
			t.Error("expected error for missing file")
		}
	})

	t.Run("empty file fails", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "empty.png")
		if err := os.WriteFile(path, nil, 0600); err != nil {
			t.Fatal(err)
		}

		if _, _, _, err := LoadScreenshot(path); err == nil {
			t.Error("expected error for empty file")
		}
	})
}

// TestCapture covers the capture chain against an httptest fixture server.
func TestCapture(t *testing.T) {
	t.Parallel()

	t.Run("collects screenshot and page metadata", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`<html><head>
				<title>Example Landing</title>
				<meta name="description" content="Great product">
			</head><body><p>hi</p></body></html>`))
		}))
		defer server.Close()

		c := New(5 * time.Second)
		page, err := c.Capture(context.Background(), server.URL, writeTestPNG(t))
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if page.URL != server.URL {
			t.Errorf("URL = %q", page.URL)
		}
		if page.Title != "Example Landing" {
			t.Errorf("Title = %q", page.Title)
		}
		if page.Metadata["description"] != "Great product" {
			t.Errorf("description = %q", page.Metadata["description"])
		}
		if page.MIMEType != "image/png" {
			t.Errorf("MIMEType = %q", page.MIMEType)
		}
		if !page.HasImage() {
			t.Error("expected image bytes")
		}
		if page.CapturedAt.IsZero() {
			t.Error("CapturedAt not set")
		}
	})

	t.Run("metadata fetch failure still yields a page", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		c := New(5 * time.Second)
		page, err := c.Capture(context.Background(), server.URL, writeTestPNG(t))
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if page.Title != "" {
			t.Errorf("expected no title, got %q", page.Title)
		}
		if !page.HasImage() {
			t.Error("expected image bytes despite fetch failure")
		}
	})

	t.Run("unreachable host still yields a page", func(t *testing.T) {
		t.Parallel()

		c := New(500 * time.Millisecond)
		page, err := c.Capture(context.Background(), "http://127.0.0.1:1", writeTestPNG(t))
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !page.HasImage() {
			t.Error("expected image bytes despite unreachable host")
		}
	})

	t.Run("missing screenshot returns ErrNoScreenshot", func(t *testing.T) {
		t.Parallel()

		c := New(time.Second)
		_, err := c.Capture(context.Background(), "https://example.com", "")
		if !errors.Is(err, ErrNoScreenshot) {
			t.Errorf("expected ErrNoScreenshot, got %v", err)
		}
	})

	t.Run("invalid target URL fails", func(t *testing.T) {
		t.Parallel()

		c := New(time.Second)
		if _, err := c.Capture(context.Background(), "not a url", writeTestPNG(t)); err == nil {
			t.Error("expected error for invalid URL")
		}
	})
}

// TestParseHead covers title and meta extraction from HTML.
func TestParseHead(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name            string
		html            string
		wantTitle       string
		wantDescription string
	}{
		{
			name:      "title only",
			html:      `<html><head><title>Hello</title></head><body></body></html>`,
			wantTitle: "Hello",
		},
		{
			name:            "meta description",
			html:            `<head><title>T</title><meta name="description" content="D"></head>`,
			wantTitle:       "T",
			wantDescription: "D",
		},
		{
			name:            "og description fallback",
			html:            `<head><meta property="og:description" content="OG"></head>`,
			wantDescription: "OG",
		},
		{
			name:      "malformed HTML still parses",
			html:      `<head><title>Broken</head><body><div>`,
			wantTitle: "Broken",
		},
		{
			name:      "title whitespace trimmed",
			html:      "<head><title>\n  Padded  \n</title></head>",
			wantTitle: "Padded",
		},
		{
			name: "empty document",
			html: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			title, description, err := parseHead(strings.NewReader(tt.html))
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if title != tt.wantTitle {
				t.Errorf("title = %q, want %q", title, tt.wantTitle)
			}
			if description != tt.wantDescription {
				t.Errorf("description = %q, want %q", description, tt.wantDescription)
			}
		})
	}
}

// TestExtractEXIF verifies EXIF-free images yield no metadata.
func TestExtractEXIF(t *testing.T) {
	t.Parallel()

	if got := extractEXIF(pngHeader); got != nil {
		t.Errorf("expected nil metadata for PNG header, got %v", got)
	}

	if got := extractEXIF(nil); got != nil {
		t.Errorf("expected nil metadata for empty input, got %v", got)
	}
}
