package model

// Dossier represents one folder-level record of the Historisches Grundbuch Basel
type Dossier struct {
	DossierID       string  `json:"dossierId"`                 // Project id, e.g. "HGB_1_014_003"
	SerieID         string  `json:"serieId"`                   // Project id of the parent serie
	StabsID         string  `json:"stabsId"`                   // Archive identifier, e.g. "HGB 1 14 3"
	Title           string  `json:"title"`                     // Usually the address, e.g. "St. Johanns-Vorstadt 2"
	HouseName       *string `json:"houseName,omitempty"`       // Historical house name, if recorded
	OldHousenumber  *string `json:"oldHousenumber,omitempty"`  // Free-text old house number, if recorded
	Owner1862       *string `json:"owner1862,omitempty"`       // Owner at the 1862 renumbering, if recorded
	DescriptiveNote *string `json:"descriptiveNote,omitempty"` // General description, if recorded
	Link            string  `json:"link"`                      // Record URI in the LOD portal

	// Derived by the enricher.
	NewHousenumber string `json:"newHousenumberFromTitle,omitempty"` // House number guessed from the title
	ParsedOldHousenumber
	NumbersFirst *string `json:"oldHousenumberNumberFirst,omitempty"` // First entry of the parsed numbers
}

// ParsedOldHousenumber holds the structured attributes derived from the
// free-text oldHousenumber field. Nil pointers mean "not determined":
// unparseable input is a normal outcome, not an error.
type ParsedOldHousenumber struct {
	Numbers            []string `json:"oldHousenumberNumber,omitempty"`             // Number tokens in source order, e.g. ["48", "48 A"]
	Supplement         *string  `json:"oldHousenumberSupplement,omitempty"`         // Free-text remainder not captured as a number
	NeighbouringNumber *string  `json:"oldHousenumberNeighbouringNumber,omitempty"` // Number of the adjacent house ("neben" construction)
	IsPartOf           *bool    `json:"oldHousenumberIsPartOf,omitempty"`           // True for "Theil von" constructions
	IsBann             *bool    `json:"oldHousenumberIsBann,omitempty"`             // True when the text mentions a "Bann" district
	IsCorrected        bool     `json:"oldHousenumberIsCorrected"`                  // True when a manual correction was applied
}

// Serie represents one serie record grouping dossiers by street
type Serie struct {
	SerieID string `json:"serieId"` // Project id, e.g. "HGB_1_014"
	StabsID string `json:"stabsId"` // Archive identifier, e.g. "HGB 1 14"
	Title   string `json:"title"`
	Link    string `json:"link"`
}

// Correction is one row of the manually curated correction table.
// Nil fields mean "no override for this attribute".
type Correction struct {
	DossierID          string  // Key into the dossier set
	Numbers            *string // Replacement for Numbers, as a textual list encoding (e.g. "['746 A', '747']")
	IsPartOf           *bool   // Replacement for IsPartOf
	NeighbouringNumber *string // Replacement for NeighbouringNumber
	SupplementAddition *string // Remark appended to Supplement
}

// Document represents one document-level record below a dossier or serie,
// as found in the "Regesten" series.
type Document struct {
	StabsID         string  `json:"stabsId"`
	Title           string  `json:"title"`
	Type            string  `json:"type"`
	DescriptiveNote *string `json:"descriptiveNote,omitempty"`
	DateLink        *string `json:"dateLink,omitempty"` // URI of the associated date record
	Link            string  `json:"link"`
}
