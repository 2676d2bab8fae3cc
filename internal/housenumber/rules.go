package housenumber

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Rule recognizes one shape of old-house-number text and extracts its parts.
// Rules are tried in priority order; the first rule whose pattern covers the
// full text wins and later rules are never attempted.
type Rule interface {
	// Name returns a short identifier for diagnostics
	Name() string

	// Match reports whether the rule's pattern covers the text
	Match(text string) bool

	// Extract pulls the structured parts out of a matched text. The second
	// return value is false when the text matches the rule's outer pattern
	// but none of its documented sub-cases; such texts stay unparsed and are
	// left to the manual correction table.
	Extract(text string) (Extraction, bool)
}

// Extraction is the raw result of a single rule
type Extraction struct {
	Numbers            []string
	Supplement         *string
	NeighbouringNumber *string
	IsPartOf           bool
}

var (
	// Rule 1: plain number lists like "1257", "48 A", "1052, 1053, 1054",
	// "1097 / 1096", "827 + 827 A", "1250 u. 1251".
	numberListRe      = regexp.MustCompile(`^([0-9]+\s?[a-zA-Z]?(,\s|\s/\s|\s\+\s|\su\.\s)?)+$`)
	numberListSplitRe = regexp.MustCompile(`,\s|\s/\s|\s\+\s|\su\.\s`)

	// Rule 2: number lists with the district marker appended, e.g. "48 A (Bann)".
	bannSuffixRe      = regexp.MustCompile(`^([0-9]+\s?[a-zA-Z]?(,\s|\s/\s)?)+\s\(Bann\)$`)
	bannSuffixSplitRe = regexp.MustCompile(`,\s|\s/\s|\s\(Bann\)`)

	// Rule 3: a leading number with an arbitrary free-text postfix,
	// e.g. "441 A u. Th. v. 440 neben 441 A".
	numberPostfixRe = regexp.MustCompile(`^[0-9]+\s?[a-zA-Z]?.+$`)
	leadingNumberRe = regexp.MustCompile(`^[0-9]+\s?([a-zA-Z](\s|,))?`)
	trailingSepRe   = regexp.MustCompile(`,$|\s$`)

	// Rules 4 and 5: "part of" constructions such as "Theil von 744 A neben 745"
	// or "Theil von 552, 551, Vorderhaus".
	partOfRe             = regexp.MustCompile(`^(Th\. v\.|Theil von|Theil v\.|Th\. von)\s([0-9]+\s?[a-zA-Z]?(,\s)*)+(\sneben)?\s?[0-9]*\s?[a-zA-Z]?$`)
	partOfSplitRe        = regexp.MustCompile(`Th\. v\.\s|Theil von\s|Theil v\.\s|Th\. von\s|\sneben\s|,\s`)
	partOfPostfixRe      = regexp.MustCompile(`^(Th\. v\.|Theil von|Theil v\.|Th\. von)\s[0-9]+\s?[a-zA-Z]?.+$`)
	partOfPostfixSplitRe = regexp.MustCompile(`Th\. v\.\s|Theil von\s|Theil v\.\s|Th\. von\s|,\s|\s`)
	neighbourScanRe      = regexp.MustCompile(`^(Th\. v\.|Theil von|Theil v\.|Th\. von)\s[0-9]+\s?[a-zA-Z]?\sneben\s[0-9]+`)
	whitespaceRe         = regexp.MustCompile(`\s`)
)

// numberListRule handles plain number lists
type numberListRule struct{}

func (r *numberListRule) Name() string { return "number-list" }

func (r *numberListRule) Match(text string) bool { return numberListRe.MatchString(text) }

func (r *numberListRule) Extract(text string) (Extraction, bool) {
	return Extraction{Numbers: numberListSplitRe.Split(text, -1)}, true
}

// bannSuffixRule handles number lists ending in the literal " (Bann)" marker.
// The marker itself is dropped; the district flag is set by the independent
// substring scan in the parser.
type bannSuffixRule struct{}

func (r *bannSuffixRule) Name() string { return "number-list-bann" }

func (r *bannSuffixRule) Match(text string) bool { return bannSuffixRe.MatchString(text) }

func (r *bannSuffixRule) Extract(text string) (Extraction, bool) {
	parts := bannSuffixSplitRe.Split(text, -1)
	return Extraction{Numbers: parts[:len(parts)-1]}, true
}

// numberPostfixRule handles a single leading number followed by free text
type numberPostfixRule struct{}

func (r *numberPostfixRule) Name() string { return "number-postfix" }

func (r *numberPostfixRule) Match(text string) bool { return numberPostfixRe.MatchString(text) }

func (r *numberPostfixRule) Extract(text string) (Extraction, bool) {
	number := leadingNumberRe.FindString(text)
	supplement := text[len(number):]
	if trailingSepRe.MatchString(number) {
		number = number[:len(number)-1]
	}
	return Extraction{Numbers: []string{number}, Supplement: &supplement}, true
}

// partOfRule handles "Theil von" constructions without a free-text postfix,
// optionally closed by a "neben <number>" reference.
type partOfRule struct{}

func (r *partOfRule) Name() string { return "part-of" }

func (r *partOfRule) Match(text string) bool { return partOfRe.MatchString(text) }

func (r *partOfRule) Extract(text string) (Extraction, bool) {
	parts := partOfSplitRe.Split(text, -1)
	if len(parts) < 2 {
		return Extraction{}, false
	}
	if strings.Contains(text, "neben") {
		supplement := "neben"
		return Extraction{
			Numbers:            []string{parts[1]},
			Supplement:         &supplement,
			NeighbouringNumber: &parts[len(parts)-1],
			IsPartOf:           true,
		}, true
	}
	return Extraction{Numbers: parts[1:], IsPartOf: true}, true
}

// partOfPostfixRule handles "Theil von" constructions with a free-text
// postfix. The token after the first number decides the sub-case: a single
// letter is a suffix of the number, a numeric token starts a run of further
// numbers, anything else begins the supplement.
type partOfPostfixRule struct{}

func (r *partOfPostfixRule) Name() string { return "part-of-postfix" }

func (r *partOfPostfixRule) Match(text string) bool { return partOfPostfixRe.MatchString(text) }

func (r *partOfPostfixRule) Extract(text string) (Extraction, bool) {
	parts := partOfPostfixSplitRe.Split(text, -1)
	if len(parts) < 3 {
		return Extraction{}, false
	}

	var numbers []string
	var supplement string

	switch next := parts[2]; {
	case isSingleLetter(next):
		// Letter suffix of the number, e.g. "Theil von 1045 A und B".
		if len(parts) < 4 {
			return Extraction{}, false
		}
		start := strings.Index(text, parts[3])
		if start < 0 {
			return Extraction{}, false
		}
		numbers = []string{parts[1] + " " + parts[2]}
		supplement = text[start:]

	case isNumeric(next):
		// Run of plain numbers, e.g. "Theil von 552, 551, Hinterhaus".
		idx := 1
		for ; idx < len(parts); idx++ {
			if !isNumeric(parts[idx]) {
				break
			}
			numbers = append(numbers, parts[idx])
		}
		if idx == len(parts) {
			idx--
		}
		start := strings.Index(text, parts[idx])
		if start < 0 {
			return Extraction{}, false
		}
		supplement = text[start:]

	default:
		// Everything after the first number and its separator is supplement,
		// e.g. "Theil von 1084, zweites Haus von 1085".
		head := partOfPostfixSplitRe.Split(text, 3)
		if len(head) < 3 {
			return Extraction{}, false
		}
		numbers = []string{head[1]}
		supplement = head[2]
	}

	ext := Extraction{Numbers: numbers, Supplement: &supplement, IsPartOf: true}

	// Dedicated neighbour sub-scan, independent of the supplement split
	// above. When both fire, the supplement repeats the neighbour reference.
	if m := neighbourScanRe.FindString(text); m != "" {
		fields := whitespaceRe.Split(m, -1)
		ext.NeighbouringNumber = &fields[len(fields)-1]
	}
	return ext, true
}

func isSingleLetter(s string) bool {
	r, size := utf8.DecodeRuneInString(s)
	return size == len(s) && size > 0 && unicode.IsLetter(r)
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
