// Package model defines the core data structures used throughout the
// landing-page analyzer.
//
// This package contains the following main types:
//   - Genre: The landing-page category that selects the analysis prompt
//   - ModelConfig: Immutable provider/model/generation settings for one request
//   - CapturedPage: A screenshot plus page metadata produced by the capture layer
//   - AnalysisResult: The validated critique returned by the analysis pipeline
//   - Report: An AnalysisResult wrapped with run metadata for export
//
// Design decision: We separate models into their own package to avoid circular
// dependencies. Multiple packages (llm, capture, report, database) need to use
// these types, so centralizing them prevents import cycles.
//
// The models are designed to be serializable to JSON for report export and
// database storage.
package model
