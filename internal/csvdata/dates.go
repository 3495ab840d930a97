package csvdata

import (
	"strings"
	"time"
)

// ParseDate normalizes a birth date into YYYY-MM-DD. Formats are tried in
// priority order: YYYY-MM-DD, DD/MM/YYYY, then DD/MM/YY (two-digit years get a
// "20" prefix, no century rollover). Input that matches no format, or matches
// one but is not a real calendar date, yields "".
func ParseDate(raw string) string {
	cleaned := strings.TrimSpace(raw)
	if cleaned == "" {
		return ""
	}

	if len(cleaned) == 10 && cleaned[4] == '-' && cleaned[7] == '-' {
		if _, err := time.Parse("2006-01-02", cleaned); err == nil {
			return cleaned
		}
		return ""
	}

	var day, month, year string
	switch {
	case len(cleaned) == 10 && cleaned[2] == '/' && cleaned[5] == '/':
		day, month, year = cleaned[0:2], cleaned[3:5], cleaned[6:10]
	case len(cleaned) == 8 && cleaned[2] == '/' && cleaned[5] == '/':
		day, month, year = cleaned[0:2], cleaned[3:5], "20"+cleaned[6:8]
	default:
		return ""
	}

	formatted := year + "-" + month + "-" + day
	if _, err := time.Parse("2006-01-02", formatted); err != nil {
		return ""
	}
	return formatted
}
