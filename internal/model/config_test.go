package model

import "testing"

// TestParseProvider verifies provider parsing.
func TestParseProvider(t *testing.T) {
	t.Parallel()

	for _, s := range []string{"gemini", "openai"} {
		if _, err := ParseProvider(s); err != nil {
			t.Errorf("ParseProvider(%q) failed: %v", s, err)
		}
	}

	for _, s := range []string{"", "anthropic", "Gemini"} {
		if _, err := ParseProvider(s); err == nil {
			t.Errorf("ParseProvider(%q) should fail", s)
		}
	}
}

// TestParseVerbosity verifies verbosity parsing.
func TestParseVerbosity(t *testing.T) {
	t.Parallel()

	for _, s := range []string{"low", "medium", "high"} {
		if _, err := ParseVerbosity(s); err != nil {
			t.Errorf("ParseVerbosity(%q) failed: %v", s, err)
		}
	}

	if _, err := ParseVerbosity("loud"); err == nil {
		t.Error("ParseVerbosity(\"loud\") should fail")
	}
}

// TestParseReasoningEffort verifies effort parsing.
func TestParseReasoningEffort(t *testing.T) {
	t.Parallel()

	for _, s := range []string{"minimal", "low", "medium", "high"} {
		if _, err := ParseReasoningEffort(s); err != nil {
			t.Errorf("ParseReasoningEffort(%q) failed: %v", s, err)
		}
	}

	if _, err := ParseReasoningEffort("maximum"); err == nil {
		t.Error("ParseReasoningEffort(\"maximum\") should fail")
	}
}

// TestModelConfigValidate tests each validation rule.
func TestModelConfigValidate(t *testing.T) {
	t.Parallel()

	validConfig := func() ModelConfig {
		return ModelConfig{
			Provider:        ProviderGemini,
			ModelName:       "gemini-2.5-flash",
			Verbosity:       VerbosityLow,
			ReasoningEffort: EffortMinimal,
		}
	}

	t.Run("valid config returns nil", func(t *testing.T) {
		t.Parallel()
		cfg := validConfig()
		if err := cfg.Validate(); err != nil {
			t.Errorf("expected no error, got %v", err)
		}
	})

	t.Run("invalid provider fails", func(t *testing.T) {
		t.Parallel()
		cfg := validConfig()
		cfg.Provider = "anthropic"
		if err := cfg.Validate(); err == nil {
			t.Error("expected error for invalid provider")
		}
	})

	t.Run("empty model name fails", func(t *testing.T) {
		t.Parallel()
		cfg := validConfig()
		cfg.ModelName = ""
		if err := cfg.Validate(); err == nil {
			t.Error("expected error for empty model name")
		}
	})

	t.Run("invalid verbosity fails", func(t *testing.T) {
		t.Parallel()
		cfg := validConfig()
		cfg.Verbosity = "loud"
		if err := cfg.Validate(); err == nil {
			t.Error("expected error for invalid verbosity")
		}
	})

	t.Run("invalid effort fails", func(t *testing.T) {
		t.Parallel()
		cfg := validConfig()
		cfg.ReasoningEffort = "maximum"
		if err := cfg.Validate(); err == nil {
			t.Error("expected error for invalid effort")
		}
	})
}
