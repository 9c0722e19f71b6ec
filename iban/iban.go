// Package iban validates International Bank Account Numbers: country
// specific length rules plus the ISO 13616 mod-97 check digits. It is pure
// and holds no state.
package iban

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrEmpty          = errors.New("iban: empty input")
	ErrBadCharacter   = errors.New("iban: non-alphanumeric character")
	ErrUnknownCountry = errors.New("iban: unknown country code")
	ErrBadLength      = errors.New("iban: wrong length for country")
	ErrCheckDigits    = errors.New("iban: check digits do not match")
)

// countryLengths maps an ISO 3166 country code to the total IBAN length
// registered for that country.
var countryLengths = map[string]int{
	"AD": 24, "AE": 23, "AL": 28, "AT": 20, "AZ": 28, "BA": 20, "BE": 16,
	"BG": 22, "BH": 22, "BR": 29, "BY": 28, "CH": 21, "CR": 22, "CY": 28,
	"CZ": 24, "DE": 22, "DK": 18, "DO": 28, "EE": 20, "EG": 29, "ES": 24,
	"FI": 18, "FO": 18, "FR": 27, "GB": 22, "GE": 22, "GI": 23, "GL": 18,
	"GR": 27, "GT": 28, "HR": 21, "HU": 28, "IE": 22, "IL": 23, "IS": 26,
	"IT": 27, "JO": 30, "KW": 30, "KZ": 20, "LB": 28, "LI": 21, "LT": 20,
	"LU": 20, "LV": 21, "MC": 27, "MD": 24, "ME": 22, "MK": 19, "MR": 27,
	"MT": 31, "MU": 30, "NL": 18, "NO": 15, "PK": 24, "PL": 28, "PS": 29,
	"PT": 25, "QA": 29, "RO": 24, "RS": 22, "SA": 24, "SE": 24, "SI": 19,
	"SK": 24, "SM": 27, "TN": 24, "TR": 26, "UA": 29, "VA": 22, "XK": 20,
}

// Parse normalizes and validates code, returning the canonical form
// (uppercase, no spaces). The zero-value return on error is always empty.
func Parse(code string) (string, error) {
	normalized := strings.ToUpper(strings.ReplaceAll(code, " ", ""))
	if normalized == "" {
		return "", ErrEmpty
	}
	if len(normalized) < 4 {
		return "", ErrBadLength
	}
	for _, char := range normalized {
		if (char < 'A' || char > 'Z') && (char < '0' || char > '9') {
			return "", fmt.Errorf("%w: %q", ErrBadCharacter, char)
		}
	}

	country := normalized[:2]
	length, ok := countryLengths[country]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownCountry, country)
	}
	if len(normalized) != length {
		return "", fmt.Errorf("%w: %s expects %d characters, got %d", ErrBadLength, country, length, len(normalized))
	}

	// Move the country code and check digits to the back, then verify the
	// mod-97 remainder of the numeric expansion is 1.
	if mod97(normalized[4:]+normalized[:4]) != 1 {
		return "", ErrCheckDigits
	}

	return normalized, nil
}

// Valid reports whether code parses as a well formed IBAN.
func Valid(code string) bool {
	_, err := Parse(code)
	return err == nil
}

// mod97 computes the remainder of the numeric expansion of iban
// (letters expand to 10..35) without building a big integer, streaming the
// remainder one character at a time.
func mod97(iban string) int {
	remainder := 0
	for _, char := range iban {
		if char >= 'A' && char <= 'Z' {
			value := int(char-'A') + 10
			remainder = (remainder*100 + value) % 97
			continue
		}
		remainder = (remainder*10 + int(char-'0')) % 97
	}
	return remainder
}
