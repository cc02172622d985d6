// Package validate holds the cheap client-side checks run before a form is
// submitted. The backend re-validates everything.
package validate

import (
	"strings"
	"unicode"

	"github.com/pkg/errors"
)

// SpecialCharacters are the characters accepted by the special-character check
const SpecialCharacters = "!@#$%^&*()_+-=[]{}|;:,.<>?"

// MinPasswordLength is the shortest accepted password
const MinPasswordLength = 8

// MaxDomainNameLength matches the backend's column size
const MaxDomainNameLength = 256

// Email reports whether value looks like local@domain.tld: exactly one '@',
// a non-empty local part and a domain whose last dot has non-empty text on
// both sides. This is a structural heuristic, not an RFC parser.
func Email(value string) bool {
	if strings.Count(value, "@") != 1 {
		return false
	}
	local, domain, _ := strings.Cut(value, "@")
	if local == "" || domain == "" {
		return false
	}
	dot := strings.LastIndex(domain, ".")
	if dot <= 0 || dot == len(domain)-1 {
		return false
	}
	return true
}

// Level is a password strength level
type Level string

const (
	Weak   Level = "weak"
	Medium Level = "medium"
	Strong Level = "strong"
)

// Checks holds the result of each password rule
type Checks struct {
	Length  bool
	Upper   bool
	Lower   bool
	Digit   bool
	Special bool
}

// Passed returns the number of satisfied rules
func (c Checks) Passed() int {
	n := 0
	for _, ok := range []bool{c.Length, c.Upper, c.Lower, c.Digit, c.Special} {
		if ok {
			n++
		}
	}
	return n
}

// Strength is the verdict for one password
type Strength struct {
	IsValid bool
	Level   Level
	Checks  Checks
	Message string // remediation for the first failing rule
}

// PasswordStrength checks length, upper, lower, digit and special rules.
// Strong iff all five pass, medium iff exactly four pass, weak otherwise.
func PasswordStrength(value string) Strength {
	c := Checks{Length: len([]rune(value)) >= MinPasswordLength}
	for _, r := range value {
		switch {
		case unicode.IsUpper(r):
			c.Upper = true
		case unicode.IsLower(r):
			c.Lower = true
		case unicode.IsDigit(r):
			c.Digit = true
		}
		if strings.ContainsRune(SpecialCharacters, r) {
			c.Special = true
		}
	}

	s := Strength{Checks: c}
	switch c.Passed() {
	case 5:
		s.IsValid = true
		s.Level = Strong
		s.Message = "Password is strong"
		return s
	case 4:
		s.Level = Medium
	default:
		s.Level = Weak
	}

	switch {
	case !c.Length:
		s.Message = "Password must be at least 8 characters long"
	case !c.Upper:
		s.Message = "Password must contain at least 1 uppercase letter"
	case !c.Lower:
		s.Message = "Password must contain at least 1 lowercase letter"
	case !c.Digit:
		s.Message = "Password must contain at least 1 number"
	default:
		s.Message = "Password must contain at least 1 special character (" + SpecialCharacters + ")"
	}
	return s
}

// PasswordsMatch returns nil while the confirmation is empty (no verdict yet),
// otherwise whether both values are equal.
func PasswordsMatch(password, confirm string) *bool {
	if confirm == "" {
		return nil
	}
	match := password == confirm
	return &match
}

// ErrEmptyDomain is returned for blank domain entries
var ErrEmptyDomain = errors.New("Please enter a domain name")

// DomainName normalizes a domain entry the way the backend stores it:
// trimmed, lower-cased and without a leading "www.".
func DomainName(value string) (string, error) {
	name := strings.ToLower(strings.TrimSpace(value))
	name = strings.TrimPrefix(name, "www.")
	if name == "" {
		return "", ErrEmptyDomain
	}
	if len(name) > MaxDomainNameLength {
		return "", errors.Errorf("Domain name must be at most %d characters", MaxDomainNameLength)
	}
	if strings.ContainsAny(name, " /\\@") {
		return "", errors.Errorf("%q is not a valid domain name", name)
	}
	return name, nil
}
