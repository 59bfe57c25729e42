package model

import "strings"

// Genres is an ordered list of genre names.  It carries no referential
// meaning; it exists for display and filtering only.  The database stores
// it as a single comma-joined column, so the two conversions below are the
// only places the encoding is known.
type Genres []string

// Join encodes the list into the comma-joined form stored in the database.
func (g Genres) Join() string {
	return strings.Join(g, ",")
}

// SplitGenres decodes a comma-joined database value back into an ordered
// list.  Empty input yields an empty (non-nil) list so that JSON encodes
// it as [] rather than null.
func SplitGenres(s string) Genres {
	if s == "" {
		return Genres{}
	}
	parts := strings.Split(s, ",")
	out := make(Genres, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
