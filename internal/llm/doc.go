// Package llm implements the analysis pipeline that turns a captured landing
// page into a validated, genre-aware critique.
//
// The package has four cooperating parts:
//   - A genre prompt catalog mapping each model.Genre to its analysis prompt
//   - Two provider clients (Gemini and OpenAI) behind one Client interface
//   - A validator that parses raw model output against the result schema
//   - A pipeline that orchestrates catalog -> client -> validator with a
//     bounded retry for malformed model output
//
// Model output is treated as untrusted external input: no field is used
// before the validator has approved the whole response. Decode and schema
// failures are retried because LLM output is non-deterministic; transport,
// authentication, and rate-limit failures propagate immediately so the
// caller decides how to react.
//
// All failures surface as *PipelineError with a classified Kind. Nothing is
// silently swallowed.
package llm
