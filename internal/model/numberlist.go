package model

import (
	"fmt"
	"strings"
)

// EncodeNumberList renders a number-token list in the textual encoding used by
// the correction table and the CSV output, e.g. ["746 A", "747"] becomes
// "['746 A', '747']". A nil list encodes to the empty string.
func EncodeNumberList(numbers []string) string {
	if numbers == nil {
		return ""
	}
	quoted := make([]string, len(numbers))
	for i, n := range numbers {
		quoted[i] = "'" + n + "'"
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}

// DecodeNumberList parses the textual list encoding back into a number-token
// list. Both single and double quotes are accepted. A malformed encoding is a
// data-quality fault of the correction row carrying it.
func DecodeNumberList(s string) ([]string, error) {
	trimmed := strings.TrimSpace(s)
	if !strings.HasPrefix(trimmed, "[") || !strings.HasSuffix(trimmed, "]") {
		return nil, fmt.Errorf("number list %q: missing brackets", s)
	}

	inner := strings.TrimSpace(trimmed[1 : len(trimmed)-1])
	numbers := []string{}
	for inner != "" {
		quote := inner[0]
		if quote != '\'' && quote != '"' {
			return nil, fmt.Errorf("number list %q: expected quoted token at %q", s, inner)
		}
		end := strings.IndexByte(inner[1:], quote)
		if end < 0 {
			return nil, fmt.Errorf("number list %q: unterminated token", s)
		}
		numbers = append(numbers, inner[1:1+end])

		inner = strings.TrimSpace(inner[end+2:])
		if inner == "" {
			break
		}
		if !strings.HasPrefix(inner, ",") {
			return nil, fmt.Errorf("number list %q: expected separator at %q", s, inner)
		}
		inner = strings.TrimSpace(inner[1:])
		if inner == "" {
			return nil, fmt.Errorf("number list %q: trailing separator", s)
		}
	}
	return numbers, nil
}
