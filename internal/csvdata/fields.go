package csvdata

import (
	"regexp"
	"strings"
)

// Field names accepted by Row.Field.
const (
	FieldPhone      = "phone"
	FieldEmail      = "email"
	FieldFirstName  = "firstName"
	FieldLastName   = "lastName"
	FieldPostalCode = "postalCode"
	FieldBirthDate  = "birthDate"
)

// Column aliases seen across export layouts: French and English names,
// accented and plain. ParseTable already trims and collapses header
// whitespace, which also covers the trailing-space header variants some
// exports produce. Order matters: first non-empty match wins.
var fieldAliases = map[string][]string{
	FieldPhone:      {"Téléphone", "Telephone", "phoneNumber", "Phone", "Numéro de téléphone", "Numero de telephone"},
	FieldEmail:      {"Adresse e-mail", "Adresse email", "email", "Email", "E-mail"},
	FieldFirstName:  {"Prénom", "Prenom", "firstName", "FirstName"},
	FieldLastName:   {"Nom", "lastName", "LastName", "Nom de famille"},
	FieldPostalCode: {"Code postal", "Code Postal", "PostalCode", "postalCode"},
	FieldBirthDate:  {"Date de naissance", "Date de Naissance", "BirthDate", "birthDate"},
}

// Field returns the first non-empty value among the known header aliases for
// name, or "" when no alias matches.
func (r Row) Field(name string) string {
	for _, alias := range fieldAliases[name] {
		if v := r[alias]; v != "" {
			return v
		}
	}
	return ""
}

var (
	postalInParens = regexp.MustCompile(`\((\d{5})\)`)
	postalLeading  = regexp.MustCompile(`^(\d{5})`)
)

// ExtractPostalCode pulls a 5-digit code out of free-form input such as
// "Paris (75001)" or "75001 Paris". Unrecognized input passes through trimmed.
func ExtractPostalCode(raw string) string {
	cleaned := strings.TrimSpace(raw)
	if cleaned == "" {
		return ""
	}
	if m := postalInParens.FindStringSubmatch(cleaned); m != nil {
		return m[1]
	}
	if m := postalLeading.FindStringSubmatch(cleaned); m != nil {
		return m[1]
	}
	return cleaned
}
