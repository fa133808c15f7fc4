package capture

import (
	exif "github.com/dsoprea/go-exif/v3"
)

// exifTags lists the EXIF tags worth surfacing in the prompt metadata.
// Capture tooling records when and how the screenshot was produced; the
// rest of the EXIF block is noise for analysis purposes.
var exifTags = map[string]string{
	"Software":           "exif_software",
	"ProcessingSoftware": "exif_processing_software",
	"DateTime":           "exif_datetime",
	"DateTimeOriginal":   "exif_datetime_original",
	"ImageDescription":   "exif_description",
	"Artist":             "exif_artist",
}

// extractEXIF pulls the interesting EXIF entries out of image bytes.
// PNG screenshots usually carry no EXIF block at all; a nil map is the
// normal result, not an error.
func extractEXIF(data []byte) map[string]string {
	rawExif, err := exif.SearchAndExtractExif(data)
	if err != nil || rawExif == nil {
		return nil
	}

	entries, _, err := exif.GetFlatExifData(rawExif, nil)
	if err != nil {
		return nil
	}

	var metadata map[string]string
	for _, entry := range entries {
		key, ok := exifTags[entry.TagName]
		if !ok || entry.Formatted == "" {
			continue
		}
		if metadata == nil {
			metadata = make(map[string]string)
		}
		metadata[key] = entry.Formatted
	}

	return metadata
}
