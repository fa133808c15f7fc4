// Package capture assembles CapturedPage values for the analysis pipeline.
//
// Full screenshot capture (headless-browser navigation, wait strategies,
// viewport slicing) is an external collaborator; this package covers the
// boundary work around it:
//   - Loading a screenshot from a local file, sniffing its media type and
//     extracting EXIF metadata when the format carries any
//   - Fetching the target page once over HTTP to recover lightweight
//     metadata (title, meta description, final URL after redirects)
//
// The metadata fetch is best-effort: a page that cannot be fetched still
// yields a usable CapturedPage, just without title context in the prompt.
package capture
