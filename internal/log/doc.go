// Package log provides logging functionality with automatic sanitization of
// provider credentials, built on top of the standard slog package.
//
// The analyzer handles two long-lived secrets, the Gemini and OpenAI API
// keys, and verbose logging of request parameters or SDK errors could leak
// them. The SecureHandler masks attribute values that look like provider
// credentials or whose keys indicate secrets, even in verbose mode, so logs
// stay safe to share when reporting provider issues.
//
// Usage:
//
//	logger := log.NewSecureLogger(os.Stderr, verbose)
//	slog.SetDefault(logger)
package log
