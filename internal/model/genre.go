package model

import "fmt"

// Genre is the landing-page category that drives prompt selection.
// The set is fixed; each genre has exactly one prompt template and there is
// no default or fallback genre.
//
// Design decision: We use string-typed constants rather than iota because
// genre values appear verbatim in CLI flags, config files, and the run
// database. A string type keeps those surfaces stable and readable without
// a separate mapping layer.
type Genre string

const (
	// GenreSaaSTool targets software-as-a-service product pages.
	GenreSaaSTool Genre = "saas_tool"

	// GenreD2CProduct targets direct-to-consumer e-commerce product pages.
	GenreD2CProduct Genre = "d2c_product"

	// GenreEducation targets course, school, and e-learning pages.
	GenreEducation Genre = "education"

	// GenreRecruiting targets hiring and employer-branding pages.
	GenreRecruiting Genre = "recruiting"

	// GenreAppDownload targets mobile app install pages.
	GenreAppDownload Genre = "app_download"
)

// AllGenres returns every supported genre in display order.
// The returned slice is a fresh copy; callers may modify it freely.
func AllGenres() []Genre {
	return []Genre{
		GenreSaaSTool,
		GenreD2CProduct,
		GenreEducation,
		GenreRecruiting,
		GenreAppDownload,
	}
}

// genreDisplayNames maps each genre to its human-readable name.
var genreDisplayNames = map[Genre]string{
	GenreSaaSTool:    "SaaS Tool",
	GenreD2CProduct:  "D2C Product",
	GenreEducation:   "Education",
	GenreRecruiting:  "Recruiting",
	GenreAppDownload: "App Download",
}

// ParseGenre converts a string into a Genre.
// It returns an error for values outside the fixed genre set so that invalid
// CLI or config input fails before any analysis starts.
func ParseGenre(s string) (Genre, error) {
	g := Genre(s)
	if !g.Valid() {
		return "", fmt.Errorf("unknown genre %q (valid: %v)", s, AllGenres())
	}
	return g, nil
}

// Valid reports whether the genre is part of the fixed genre set.
func (g Genre) Valid() bool {
	_, ok := genreDisplayNames[g]
	return ok
}

// DisplayName returns the human-readable name of the genre.
// Unknown genres return their raw string value.
func (g Genre) DisplayName() string {
	if name, ok := genreDisplayNames[g]; ok {
		return name
	}
	return string(g)
}

// String implements fmt.Stringer.
func (g Genre) String() string {
	return string(g)
}
