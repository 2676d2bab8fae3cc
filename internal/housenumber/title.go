package housenumber

import (
	"regexp"
	"strings"
)

var (
	// Clean address form "Street Name 12" or "StreetName12": letters, dots,
	// hyphens and spaces followed by a number with an optional letter suffix.
	titleAddressRe = regexp.MustCompile(`^[A-Za-zäöü.\-\s]+[0-9]+[a-z]?$`)

	titleTrailingNumberRe = regexp.MustCompile(`[0-9]+[a-z]?$`)
	titleNumberRe         = regexp.MustCompile(`[0-9]+[a-z]?`)
)

// FromTitle guesses the modern house number from a dossier title. An empty
// return value means no number could be derived. Titles containing a colon
// are administrative headings such as "Kanonengasse: Übersicht", never
// addresses.
func FromTitle(title string) string {
	if strings.Contains(title, ":") {
		return ""
	}

	if titleAddressRe.MatchString(title) {
		parts := strings.Split(title, " ")
		if len(parts) == 1 {
			// No whitespace before the number, e.g. "Malzgasse10".
			return titleTrailingNumberRe.FindString(title)
		}
		return parts[len(parts)-1]
	}

	// Fall back to the first number anywhere in the title, covering forms
	// like "St. Johanns-Vorstadt 8, 10".
	return titleNumberRe.FindString(title)
}
