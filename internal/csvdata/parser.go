// Package csvdata parses the delimited exports the ticketing-site scraper
// drops in the download directory and extracts typed fields out of their
// loosely named columns.
package csvdata

import (
	"regexp"
	"strings"
)

// Row maps a cleaned header name to the trimmed value of one data line.
type Row map[string]string

var innerWhitespace = regexp.MustCompile(`\s+`)

// ParseTable turns raw file content into header-keyed rows, in file order.
//
// The exports prepend one banner/title line before the real header, so a
// usable file has at least a banner, a header and one data line; anything
// shorter yields no rows. The delimiter is sniffed from the header line
// (";" when present, "," otherwise). Double quotes group fields but there is
// no support for escaped "" sequences. Rows shorter than the header keep the
// missing trailing fields as empty strings.
func ParseTable(content string) []Row {
	var lines []string
	for _, line := range strings.Split(content, "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	if len(lines) < 3 {
		return nil
	}

	sep := byte(',')
	if strings.Contains(lines[1], ";") {
		sep = ';'
	}

	rawHeaders := splitLine(lines[1], sep)
	headers := make([]string, len(rawHeaders))
	for i, h := range rawHeaders {
		headers[i] = innerWhitespace.ReplaceAllString(stripQuotes(strings.TrimSpace(h)), " ")
	}

	rows := make([]Row, 0, len(lines)-2)
	for _, line := range lines[2:] {
		values := splitLine(line, sep)
		row := Row{}
		for i, header := range headers {
			if header == "" {
				continue
			}
			value := ""
			if i < len(values) {
				value = values[i]
			}
			row[header] = strings.TrimSpace(stripQuotes(value))
		}
		rows = append(rows, row)
	}
	return rows
}

// splitLine splits on sep outside double-quote pairs. Quote characters are
// dropped from the output.
func splitLine(line string, sep byte) []string {
	var values []string
	var current strings.Builder
	insideQuotes := false

	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case c == '"':
			insideQuotes = !insideQuotes
		case c == sep && !insideQuotes:
			values = append(values, strings.TrimSpace(current.String()))
			current.Reset()
		default:
			current.WriteByte(c)
		}
	}
	values = append(values, strings.TrimSpace(current.String()))
	return values
}

func stripQuotes(s string) string {
	s = strings.TrimPrefix(s, `"`)
	return strings.TrimSuffix(s, `"`)
}
