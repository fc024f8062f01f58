// Package cnpj formats and normalizes Brazilian company tax ids (CNPJ).
package cnpj

import (
	"regexp"
	"strings"
)

// Length is the number of digits in a CNPJ.
const Length = 14

// ErrorMessage is shown when a form field is not in the punctuated format.
const ErrorMessage = "CNPJ deve estar no formato 00.000.000/0000-00"

var formattedPattern = regexp.MustCompile(`^\d{2}\.\d{3}\.\d{3}/\d{4}-\d{2}$`)

// Strip removes every non-digit character.
func Strip(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Format renders 14 digits as XX.XXX.XXX/XXXX-XX. Input that does not strip
// to exactly 14 digits is returned unchanged.
func Format(s string) string {
	d := Strip(s)
	if len(d) != Length {
		return s
	}
	return d[0:2] + "." + d[2:5] + "." + d[5:8] + "/" + d[8:12] + "-" + d[12:14]
}

// IsFormatted reports whether s is in the punctuated form required by forms.
func IsFormatted(s string) bool {
	return formattedPattern.MatchString(s)
}

// Normalize returns the digits of s and whether they form a full CNPJ.
func Normalize(s string) (string, bool) {
	d := Strip(s)
	return d, len(d) == Length
}
