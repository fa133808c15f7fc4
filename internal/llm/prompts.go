package llm

import (
	"fmt"
	"sort"
	"strings"

	"github.com/onitasu/lp-ai-analyzer/internal/model"
)

// systemPrompt frames the model as a visual auditor. It is shared by every
// genre; the genre template adds the audience-specific focus.
const systemPrompt = `You are a senior UI/UX designer auditing a landing page screenshot.
Focus strictly on visual design: typography, color and contrast, layout,
spacing, imagery, visual hierarchy, and call-to-action prominence.
Out of scope: SEO, accessibility attributes, performance, and content rewrites.
Answer concisely and only in the requested JSON format.`

// outputContract tells the model the exact JSON shape the validator accepts.
// Priority and category values outside these sets are rejected and the
// request is retried, so the contract spells them out verbatim.
const outputContract = `Respond with a single JSON object and nothing else:
{
  "issues": [{"description": "...", "priority": "high|medium|low", "category": "typography|color|layout|imagery|spacing|hierarchy|cta|copy|other"}],
  "suggestions": [{"description": "...", "issue_ref": "optional reference to an issue"}],
  "notes": "overall observations"
}
Both "issues" and "suggestions" must be present (empty arrays are fine).
Do not wrap the JSON in markdown fences or add commentary.`

// genreTemplates maps every genre to its audit focus. The catalog is total
// over the fixed genre set: each enumerated genre has exactly one template
// and there is no fallback entry. Passing an unvalidated genre is a caller
// bug, so callers parse genres via model.ParseGenre first.
var genreTemplates = map[model.Genre]string{
	model.GenreSaaSTool: `This is a SaaS product landing page.
Audit it for visual credibility and conversion:
- Does the hero communicate the product at a glance (screenshot, headline weight)?
- Is the primary CTA visually dominant over secondary actions?
- Do pricing/feature sections use consistent card layout and spacing?
- Are trust signals (logos, testimonials) visually integrated, not bolted on?`,

	model.GenreD2CProduct: `This is a direct-to-consumer product landing page.
Audit it for visual desirability and purchase momentum:
- Is product photography large, sharp, and given enough whitespace?
- Does the buy button stand out against the brand palette?
- Are price, offer, and guarantee visually grouped near the CTA?
- Does the page keep a consistent mood (color temperature, typography pairing)?`,

	model.GenreEducation: `This is an education or course landing page.
Audit it for visual clarity and trust:
- Is the curriculum/benefit section scannable (hierarchy, list styling)?
- Do instructor and testimonial blocks look authentic and well-framed?
- Is the enrollment CTA visible without scrolling past dense text?
- Does typography keep long-form sections readable (line length, leading)?`,

	model.GenreRecruiting: `This is a recruiting or employer-branding landing page.
Audit it for visual appeal to candidates:
- Do team/workplace photos feel genuine and consistently treated?
- Is the application CTA prominent and repeated at natural decision points?
- Are role, culture, and benefits sections visually distinct?
- Does the page avoid wall-of-text sections through spacing and imagery?`,

	model.GenreAppDownload: `This is a mobile app download landing page.
Audit it for visual focus on installation:
- Are store badges and device mockups prominent and crisp?
- Does the above-the-fold area show the app UI, not just slogans?
- Is there one clear visual path to the download action?
- Are feature highlights shown with screenshots rather than described in text?`,
}

// verbosityHints is appended to the Gemini prompt in place of the native
// verbosity parameter the OpenAI path uses.
var verbosityHints = map[model.Verbosity]string{
	model.VerbosityLow:    "Output granularity: be brief, essentials only.",
	model.VerbosityMedium: "Output granularity: moderately detailed, keep rationale short.",
	model.VerbosityHigh:   "Output granularity: explain in detail and include rationale.",
}

// effortHints is the prompt-text counterpart of the OpenAI reasoning-effort
// parameter.
var effortHints = map[model.ReasoningEffort]string{
	model.EffortMinimal: "Reasoning policy: reach conclusions quickly with minimal internal deliberation.",
	model.EffortLow:     "Reasoning policy: light reasoning, favor speed.",
	model.EffortMedium:  "Reasoning policy: standard, efficient reasoning.",
	model.EffortHigh:    "Reasoning policy: reason carefully in multiple steps.",
}

// TemplateFor returns the prompt template for the given genre.
// It is a total function over the fixed genre set; every genre returned by
// model.AllGenres has a non-empty template.
func TemplateFor(genre model.Genre) string {
	return genreTemplates[genre]
}

// SystemPrompt returns the shared system prompt.
func SystemPrompt() string {
	return systemPrompt
}

// BuildPrompt composes the final analysis prompt from the genre template,
// the captured page's metadata, and an optional extra instruction from the
// user. The output contract is always the last section so the schema stays
// in the model's most recent context.
func BuildPrompt(genre model.Genre, page *model.CapturedPage, extraInstruction string) string {
	var b strings.Builder

	b.WriteString("# Task\n")
	b.WriteString(TemplateFor(genre))
	b.WriteString("\n\n# Page\n")
	fmt.Fprintf(&b, "URL: %s\n", page.URL)
	if page.Title != "" {
		fmt.Fprintf(&b, "Title: %s\n", page.Title)
	}
	if len(page.Metadata) > 0 {
		for _, k := range sortedKeys(page.Metadata) {
			fmt.Fprintf(&b, "%s: %s\n", k, page.Metadata[k])
		}
	}

	if extraInstruction != "" {
		b.WriteString("\n# Additional request\n")
		b.WriteString(extraInstruction)
		b.WriteString("\n")
	}

	b.WriteString("\n# Output\n")
	b.WriteString(outputContract)

	return b.String()
}

// geminiSystemInstruction appends verbosity and effort hints to the system
// prompt. The Gemini API has no native parameters for these controls, so
// they travel as instruction text; the OpenAI client uses API parameters
// instead and calls SystemPrompt directly.
func geminiSystemInstruction(cfg model.ModelConfig) string {
	return strings.Join([]string{
		systemPrompt,
		verbosityHints[cfg.Verbosity],
		effortHints[cfg.ReasoningEffort],
	}, "\n")
}

// sortedKeys returns map keys in stable order so prompts are deterministic.
func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
