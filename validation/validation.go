// Package validation collects per-field form errors. Forms are validated before
// anything is sent to the remote API.
package validation

import (
	"net/mail"
	"sort"
	"strings"
	"unicode/utf8"
)

// Common field messages.
const (
	MsgEmailRequired = "Email é obrigatório"
	MsgEmailInvalid  = "Email inválido"
)

// Errors maps a field name to the first message that failed for it.
type Errors map[string]string

// Check records msg against field when ok is false and the field has no
// earlier failure.
func (e Errors) Check(ok bool, field, msg string) {
	if ok {
		return
	}
	if _, exists := e[field]; !exists {
		e[field] = msg
	}
}

// Err returns nil when no field failed.
func (e Errors) Err() error {
	if len(e) == 0 {
		return nil
	}
	return e
}

func (e Errors) Error() string {
	fields := e.Fields()
	parts := make([]string, len(fields))
	for i, f := range fields {
		parts[i] = f + ": " + e[f]
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// UserMessage returns the message of the first failing field, in field order.
func (e Errors) UserMessage() string {
	fields := e.Fields()
	if len(fields) == 0 {
		return ""
	}
	return e[fields[0]]
}

// Fields returns the failing field names sorted.
func (e Errors) Fields() []string {
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return fields
}

// Len counts characters rather than bytes.
func Len(s string) int {
	return utf8.RuneCountInString(s)
}

// IsEmail reports whether s is a bare address such as a@b.co.
func IsEmail(s string) bool {
	addr, err := mail.ParseAddress(s)
	if err != nil || addr.Address != s || addr.Name != "" {
		return false
	}
	at := strings.LastIndexByte(s, '@')
	return at > 0 && strings.Contains(s[at+1:], ".")
}

// Email applies the required/valid pair used by every email field.
func (e Errors) Email(field, value string) {
	e.Check(value != "", field, MsgEmailRequired)
	e.Check(IsEmail(value), field, MsgEmailInvalid)
}

// Login validates the login form.
func Login(email, password string) error {
	errs := Errors{}
	errs.Email("email", email)
	errs.Check(Len(password) >= 6, "password", "Senha deve ter no mínimo 6 caracteres")
	return errs.Err()
}
