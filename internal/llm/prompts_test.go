package llm

import (
	"strings"
	"testing"

	"github.com/onitasu/lp-ai-analyzer/internal/model"
)

// TestTemplateFor verifies the prompt catalog is total over the genre set.
func TestTemplateFor(t *testing.T) {
	t.Parallel()

	for _, genre := range model.AllGenres() {
		if TemplateFor(genre) == "" {
			t.Errorf("genre %s has no template", genre)
		}
	}
}

// TestHintMaps verifies every verbosity and effort level has a prompt hint,
// since the Gemini path depends on these instead of native parameters.
func TestHintMaps(t *testing.T) {
	t.Parallel()

	for _, v := range []model.Verbosity{model.VerbosityLow, model.VerbosityMedium, model.VerbosityHigh} {
		if verbosityHints[v] == "" {
			t.Errorf("verbosity %s has no hint", v)
		}
	}

	for _, e := range []model.ReasoningEffort{model.EffortMinimal, model.EffortLow, model.EffortMedium, model.EffortHigh} {
		if effortHints[e] == "" {
			t.Errorf("effort %s has no hint", e)
		}
	}
}

// TestBuildPrompt covers prompt composition from page metadata.
func TestBuildPrompt(t *testing.T) {
	t.Parallel()

	t.Run("contains genre template and output contract", func(t *testing.T) {
		t.Parallel()

		page := &model.CapturedPage{URL: "https://example.com"}
		prompt := BuildPrompt(model.GenreSaaSTool, page, "")

		if !strings.Contains(prompt, TemplateFor(model.GenreSaaSTool)) {
			t.Error("prompt missing genre template")
		}
		if !strings.Contains(prompt, `"priority": "high|medium|low"`) {
			t.Error("prompt missing output contract")
		}
		if !strings.Contains(prompt, "URL: https://example.com") {
			t.Error("prompt missing target URL")
		}
	})

	t.Run("includes title and metadata when present", func(t *testing.T) {
		t.Parallel()

		page := &model.CapturedPage{
			URL:   "https://example.com",
			Title: "Example Landing",
			Metadata: map[string]string{
				"description": "A page about examples",
			},
		}
		prompt := BuildPrompt(model.GenreEducation, page, "")

		if !strings.Contains(prompt, "Title: Example Landing") {
			t.Error("prompt missing page title")
		}
		if !strings.Contains(prompt, "description: A page about examples") {
			t.Error("prompt missing page metadata")
		}
	})

	t.Run("extra instruction gets its own section", func(t *testing.T) {
		t.Parallel()

		page := &model.CapturedPage{URL: "https://example.com"}
		prompt := BuildPrompt(model.GenreSaaSTool, page, "Focus on the hero section.")

		if !strings.Contains(prompt, "# Additional request\nFocus on the hero section.") {
			t.Error("prompt missing extra instruction section")
		}
	})

	t.Run("no extra instruction omits the section", func(t *testing.T) {
		t.Parallel()

		page := &model.CapturedPage{URL: "https://example.com"}
		prompt := BuildPrompt(model.GenreSaaSTool, page, "")

		if strings.Contains(prompt, "# Additional request") {
			t.Error("unexpected extra instruction section")
		}
	})

	t.Run("metadata order is deterministic", func(t *testing.T) {
		t.Parallel()

		page := &model.CapturedPage{
			URL: "https://example.com",
			Metadata: map[string]string{
				"zeta":  "z",
				"alpha": "a",
				"mid":   "m",
			},
		}

		first := BuildPrompt(model.GenreSaaSTool, page, "")
		for range 10 {
			if BuildPrompt(model.GenreSaaSTool, page, "") != first {
				t.Fatal("prompt not deterministic across builds")
			}
		}

		if strings.Index(first, "alpha: a") > strings.Index(first, "zeta: z") {
			t.Error("metadata keys not sorted")
		}
	})

	t.Run("output contract is the last section", func(t *testing.T) {
		t.Parallel()

		page := &model.CapturedPage{URL: "https://example.com"}
		prompt := BuildPrompt(model.GenreAppDownload, page, "check badges")

		if !strings.HasSuffix(prompt, outputContract) {
			t.Error("output contract is not the final section")
		}
	})
}

// TestGeminiSystemInstruction verifies verbosity and effort travel as
// instruction text on the Gemini path.
func TestGeminiSystemInstruction(t *testing.T) {
	t.Parallel()

	cfg := model.ModelConfig{
		Provider:        model.ProviderGemini,
		ModelName:       "gemini-2.5-flash",
		Verbosity:       model.VerbosityHigh,
		ReasoningEffort: model.EffortMedium,
	}

	instruction := geminiSystemInstruction(cfg)

	if !strings.Contains(instruction, systemPrompt) {
		t.Error("instruction missing system prompt")
	}
	if !strings.Contains(instruction, verbosityHints[model.VerbosityHigh]) {
		t.Error("instruction missing verbosity hint")
	}
	if !strings.Contains(instruction, effortHints[model.EffortMedium]) {
		t.Error("instruction missing effort hint")
	}
}
