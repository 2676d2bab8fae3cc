package stabs

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var idSplitRe = regexp.MustCompile(`\s+|/`)

// SerieID derives the project id from the archive identifier of a serie:
// "HGB 1 14" becomes "HGB_1_014".
func SerieID(identifier string) (string, error) {
	parts := strings.Split(identifier, " ")
	if len(parts) < 3 {
		return "", fmt.Errorf("serie identifier %q: expected section and serie number", identifier)
	}
	serie, err := strconv.Atoi(parts[2])
	if err != nil {
		return "", fmt.Errorf("serie identifier %q: %w", identifier, err)
	}
	return fmt.Sprintf("HGB_%s_%03d", parts[1], serie), nil
}

// DossierID derives the project id from the archive identifier of a dossier:
// "HGB 1 14 3" (or with slashes) becomes "HGB_1_014_003".
func DossierID(identifier string) (string, error) {
	parts := idSplitRe.Split(identifier, -1)
	if len(parts) < 4 {
		return "", fmt.Errorf("dossier identifier %q: expected section, serie and dossier number", identifier)
	}
	serie, err := strconv.Atoi(parts[2])
	if err != nil {
		return "", fmt.Errorf("dossier identifier %q: %w", identifier, err)
	}
	dossier, err := strconv.Atoi(parts[3])
	if err != nil {
		return "", fmt.Errorf("dossier identifier %q: %w", identifier, err)
	}
	return fmt.Sprintf("HGB_%s_%03d_%03d", parts[1], serie, dossier), nil
}
