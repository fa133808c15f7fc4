package database

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/onitasu/lp-ai-analyzer/internal/model"
)

// openTestDB opens a RunDB in a fresh temp directory.
func openTestDB(t *testing.T) *RunDB {
	t.Helper()

	db, err := Open(t.TempDir(), DefaultOptions())
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Errorf("failed to close database: %v", err)
		}
	})
	return db
}

// successfulReport returns a report with a validated result.
func successfulReport(url string) *model.Report {
	return &model.Report{
		URL:        url,
		Title:      "Example",
		Genre:      model.GenreSaaSTool,
		Provider:   model.ProviderGemini,
		ModelName:  "gemini-2.5-flash",
		AnalyzedAt: time.Now(),
		Attempts:   1,
		Result: &model.AnalysisResult{
			Issues: []model.Issue{
				{Description: "low contrast CTA", Priority: model.PriorityHigh, Category: model.CategoryColor},
			},
			Suggestions: []model.Suggestion{},
			Notes:       "n",
		},
	}
}

// TestOpen covers database creation behavior.
func TestOpen(t *testing.T) {
	t.Parallel()

	t.Run("creates database in new directory", func(t *testing.T) {
		t.Parallel()

		dir := filepath.Join(t.TempDir(), "nested", "data")
		db, err := Open(dir, DefaultOptions())
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		defer db.Close()

		if db.Path() != filepath.Join(dir, "lpanalyzer.db") {
			t.Errorf("unexpected path %s", db.Path())
		}
	})

	t.Run("refuses missing database without create option", func(t *testing.T) {
		t.Parallel()

		opts := DefaultOptions()
		opts.CreateIfNotExists = false

		if _, err := Open(t.TempDir(), opts); err == nil {
			t.Error("expected error for missing database")
		}
	})
}

// TestSaveAndListRuns covers the save/list round trip.
func TestSaveAndListRuns(t *testing.T) {
	t.Parallel()

	t.Run("successful run round-trips", func(t *testing.T) {
		t.Parallel()

		db := openTestDB(t)
		ctx := context.Background()

		id, err := db.SaveRun(ctx, successfulReport("https://example.com"))
		if err != nil {
			t.Fatalf("SaveRun failed: %v", err)
		}
		if id <= 0 {
			t.Errorf("expected positive id, got %d", id)
		}

		records, err := db.RecentRuns(ctx, 10)
		if err != nil {
			t.Fatalf("RecentRuns failed: %v", err)
		}
		if len(records) != 1 {
			t.Fatalf("expected 1 record, got %d", len(records))
		}

		got := records[0].Report
		if got.URL != "https://example.com" {
			t.Errorf("URL = %q", got.URL)
		}
		if got.Genre != model.GenreSaaSTool {
			t.Errorf("Genre = %q", got.Genre)
		}
		if got.Provider != model.ProviderGemini {
			t.Errorf("Provider = %q", got.Provider)
		}
		if !got.Succeeded() {
			t.Fatal("expected stored run to carry a result")
		}
		if len(got.Result.Issues) != 1 || got.Result.Issues[0].Priority != model.PriorityHigh {
			t.Errorf("result not preserved: %+v", got.Result)
		}
	})

	t.Run("failed run stores error without result", func(t *testing.T) {
		t.Parallel()

		db := openTestDB(t)
		ctx := context.Background()

		failed := &model.Report{
			URL:          "https://example.com",
			Genre:        model.GenreEducation,
			Provider:     model.ProviderOpenAI,
			ModelName:    "gpt-5-mini",
			Attempts:     3,
			ErrorMessage: "validation_exhausted",
		}

		if _, err := db.SaveRun(ctx, failed); err != nil {
			t.Fatalf("SaveRun failed: %v", err)
		}

		records, err := db.RecentRuns(ctx, 10)
		if err != nil {
			t.Fatalf("RecentRuns failed: %v", err)
		}
		if len(records) != 1 {
			t.Fatalf("expected 1 record, got %d", len(records))
		}

		got := records[0].Report
		if got.Succeeded() {
			t.Error("failed run should not carry a result")
		}
		if got.ErrorMessage != "validation_exhausted" {
			t.Errorf("ErrorMessage = %q", got.ErrorMessage)
		}
		if got.Attempts != 3 {
			t.Errorf("Attempts = %d", got.Attempts)
		}
	})

	t.Run("limit bounds the result set", func(t *testing.T) {
		t.Parallel()

		db := openTestDB(t)
		ctx := context.Background()

		for i := 0; i < 5; i++ {
			if _, err := db.SaveRun(ctx, successfulReport("https://example.com")); err != nil {
				t.Fatalf("SaveRun failed: %v", err)
			}
		}

		records, err := db.RecentRuns(ctx, 3)
		if err != nil {
			t.Fatalf("RecentRuns failed: %v", err)
		}
		if len(records) != 3 {
			t.Errorf("expected 3 records, got %d", len(records))
		}
	})

	t.Run("newest run comes first", func(t *testing.T) {
		t.Parallel()

		db := openTestDB(t)
		ctx := context.Background()

		firstID, err := db.SaveRun(ctx, successfulReport("https://first.example"))
		if err != nil {
			t.Fatalf("SaveRun failed: %v", err)
		}
		secondID, err := db.SaveRun(ctx, successfulReport("https://second.example"))
		if err != nil {
			t.Fatalf("SaveRun failed: %v", err)
		}

		records, err := db.RecentRuns(ctx, 0)
		if err != nil {
			t.Fatalf("RecentRuns failed: %v", err)
		}
		if len(records) != 2 {
			t.Fatalf("expected 2 records, got %d", len(records))
		}
		if records[0].ID != secondID || records[1].ID != firstID {
			t.Errorf("expected newest first, got ids %d, %d", records[0].ID, records[1].ID)
		}
	})
}

// TestRunsForURL covers per-target filtering.
func TestRunsForURL(t *testing.T) {
	t.Parallel()

	db := openTestDB(t)
	ctx := context.Background()

	if _, err := db.SaveRun(ctx, successfulReport("https://a.example")); err != nil {
		t.Fatalf("SaveRun failed: %v", err)
	}
	if _, err := db.SaveRun(ctx, successfulReport("https://b.example")); err != nil {
		t.Fatalf("SaveRun failed: %v", err)
	}
	if _, err := db.SaveRun(ctx, successfulReport("https://a.example")); err != nil {
		t.Fatalf("SaveRun failed: %v", err)
	}

	records, err := db.RunsForURL(ctx, "https://a.example")
	if err != nil {
		t.Fatalf("RunsForURL failed: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	for _, record := range records {
		if record.Report.URL != "https://a.example" {
			t.Errorf("unexpected URL %q", record.Report.URL)
		}
	}
}

// TestRunByID covers single-run lookup.
func TestRunByID(t *testing.T) {
	t.Parallel()

	db := openTestDB(t)
	ctx := context.Background()

	id, err := db.SaveRun(ctx, successfulReport("https://example.com"))
	if err != nil {
		t.Fatalf("SaveRun failed: %v", err)
	}

	record, err := db.RunByID(ctx, id)
	if err != nil {
		t.Fatalf("RunByID failed: %v", err)
	}
	if record == nil || record.ID != id {
		t.Fatalf("expected record %d, got %+v", id, record)
	}

	missing, err := db.RunByID(ctx, id+1000)
	if err != nil {
		t.Fatalf("RunByID failed: %v", err)
	}
	if missing != nil {
		t.Errorf("expected nil for unknown id, got %+v", missing)
	}
}
