// Package main provides the entry point for the lpanalyzer CLI.
//
// lpanalyzer sends a landing-page screenshot to a multimodal LLM and turns
// the response into a validated design critique: prioritized visual issues
// and concrete improvement suggestions.
//
// Usage:
//
//	lpanalyzer analyze --screenshot page.png https://example.com
//	lpanalyzer analyze -g d2c_product --provider openai -s page.png https://example.com
//
// See --help for all available options.
package main

// main is the entry point for lpanalyzer.
func main() {
	Execute()
}
