package model

import "time"

// CapturedPage holds a landing-page screenshot and the metadata collected
// alongside it. It is produced by the capture layer and owned by the caller
// for the duration of one analysis; the analysis pipeline only reads it.
//
// The pipeline imposes no format constraint on Image beyond "an image the
// provider API accepts". Format negotiation is the capture layer's job.
type CapturedPage struct {
	// Image is the raw screenshot bytes (typically PNG or JPEG).
	Image []byte `json:"-"`

	// MIMEType is the detected media type of Image (e.g. "image/png").
	MIMEType string `json:"mime_type"`

	// URL is the source address of the captured page.
	URL string `json:"url"`

	// Title is the page title, when the capture layer could determine it.
	Title string `json:"title,omitempty"`

	// CapturedAt is when the screenshot was taken or loaded.
	CapturedAt time.Time `json:"captured_at"`

	// Metadata holds optional capture details such as EXIF fields from the
	// screenshot file or the final URL after redirects.
	Metadata map[string]string `json:"metadata,omitempty"`
}

// HasImage reports whether the page carries screenshot bytes.
// Analysis without an image is possible but produces weaker critiques,
// so callers log a warning when this returns false.
func (p *CapturedPage) HasImage() bool {
	return len(p.Image) > 0
}
