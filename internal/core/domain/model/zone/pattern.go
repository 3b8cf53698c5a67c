package zone

import (
	"fmt"
	"strings"

	"fulfillment/internal/pkg/errs"
)

// patternKind enumerates the closed set of postal pattern variants.
type patternKind int

const (
	patternExact patternKind = iota
	patternPrefix
	patternRange
)

// PostalPattern is one postal-code matching rule in its parsed form. Three
// variants exist:
//
//   - exact:  "75001" matches only the literal code
//   - prefix: "75*" matches any code starting with "75"
//   - range:  "10000-19999" matches codes between the bounds, inclusive,
//     compared lexicographically on the literal strings
//
// Parsing happens once at construction; matching is a single dispatch on the
// variant. The zero value is an exact match against the empty string and is
// never produced by ParsePostalPattern.
type PostalPattern struct {
	kind patternKind
	// exact value or prefix, depending on kind
	value string
	// range bounds, set only for patternRange
	low  string
	high string
}

// ParsePostalPattern parses a pattern literal into its variant:
// a trailing "*" makes a prefix pattern, a single "-" makes an inclusive
// range, anything else matches exactly. A bare "*" matches every code.
func ParsePostalPattern(literal string) (PostalPattern, error) {
	trimmed := strings.TrimSpace(literal)
	if trimmed == "" {
		return PostalPattern{}, errs.NewValueIsRequiredError("postalPattern")
	}

	if strings.HasSuffix(trimmed, "*") {
		prefix := strings.TrimSuffix(trimmed, "*")
		if strings.ContainsAny(prefix, "*-") {
			return PostalPattern{}, errs.NewValueIsInvalidErrorWithCause("postalPattern",
				fmt.Errorf("%q mixes wildcard and other pattern forms", literal))
		}
		return PostalPattern{kind: patternPrefix, value: prefix}, nil
	}

	if strings.Contains(trimmed, "-") {
		parts := strings.Split(trimmed, "-")
		if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
			return PostalPattern{}, errs.NewValueIsInvalidErrorWithCause("postalPattern",
				fmt.Errorf("%q is not a low-high range", literal))
		}
		low, high := parts[0], parts[1]
		if low > high {
			return PostalPattern{}, errs.NewValueIsInvalidErrorWithCause("postalPattern",
				fmt.Errorf("range %q has bounds in the wrong order", literal))
		}
		return PostalPattern{kind: patternRange, low: low, high: high}, nil
	}

	return PostalPattern{kind: patternExact, value: trimmed}, nil
}

// ParsePostalPatterns parses a list of literals, failing on the first invalid one.
func ParsePostalPatterns(literals []string) ([]PostalPattern, error) {
	patterns := make([]PostalPattern, 0, len(literals))
	for _, literal := range literals {
		p, err := ParsePostalPattern(literal)
		if err != nil {
			return nil, err
		}
		patterns = append(patterns, p)
	}
	return patterns, nil
}

// Matches reports whether the postal code satisfies this pattern.
func (p PostalPattern) Matches(postalCode string) bool {
	switch p.kind {
	case patternPrefix:
		return strings.HasPrefix(postalCode, p.value)
	case patternRange:
		return postalCode >= p.low && postalCode <= p.high
	default:
		return postalCode == p.value
	}
}

// String renders the pattern back to its literal form for persistence and display.
func (p PostalPattern) String() string {
	switch p.kind {
	case patternPrefix:
		return p.value + "*"
	case patternRange:
		return p.low + "-" + p.high
	default:
		return p.value
	}
}

// anyMatches reports whether at least one pattern in the list matches the code.
func anyMatches(patterns []PostalPattern, postalCode string) bool {
	for _, p := range patterns {
		if p.Matches(postalCode) {
			return true
		}
	}
	return false
}
