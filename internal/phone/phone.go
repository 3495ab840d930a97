// Package phone canonicalizes French phone numbers. Contacts are stored in
// local format (0XXXXXXXXX); the SMS provider wants international (+33...).
package phone

import (
	"regexp"
	"strings"
)

// Format selects the output shape of Normalize.
type Format int

const (
	Local Format = iota
	International
)

var (
	separators  = regexp.MustCompile(`[\s._()\-]+`)
	localNumber = regexp.MustCompile(`^0[1-9]\d{8}$`)
)

// Normalize cleans raw input and rewrites the country prefix for the requested
// format. It returns "" when the input is empty or, for Local, when the result
// is not a valid 10-digit French number. The International path is best-effort
// and does not re-validate digit count; a +-prefixed number with a foreign
// country code passes through unchanged there.
func Normalize(raw string, format Format) string {
	cleaned := separators.ReplaceAllString(raw, "")
	if cleaned == "" {
		return ""
	}

	var national string
	switch {
	case strings.HasPrefix(cleaned, "+33"):
		national = cleaned[3:]
	case strings.HasPrefix(cleaned, "0033"):
		national = cleaned[4:]
	case strings.HasPrefix(cleaned, "33") && len(cleaned) == 11:
		national = cleaned[2:]
	case strings.HasPrefix(cleaned, "+"):
		// Foreign country code: usable as-is for the provider, never as a
		// stored local number.
		if format == International {
			return cleaned
		}
		return ""
	case strings.HasPrefix(cleaned, "0"):
		national = cleaned[1:]
	default:
		national = cleaned
	}

	if format == International {
		return "+33" + national
	}

	local := "0" + national
	if !localNumber.MatchString(local) {
		return ""
	}
	return local
}
