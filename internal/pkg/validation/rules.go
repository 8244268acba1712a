package validation

import (
	"regexp"
	"unicode"
)

// Validation rule patterns
var (
	// Subject codes are exactly three uppercase letters
	SubjectCodePattern = `^[A-Z]{3}$`

	// Email validation pattern
	EmailPattern = `^[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,}$`

	// Password min length
	PasswordMinLength = 8
)

// CompiledPatterns caches compiled regex patterns
var CompiledPatterns = struct {
	SubjectCode *regexp.Regexp
	Email       *regexp.Regexp
}{
	SubjectCode: regexp.MustCompile(SubjectCodePattern),
	Email:       regexp.MustCompile(EmailPattern),
}

// IsValidSubjectCode reports whether code is exactly 3 uppercase letters.
func IsValidSubjectCode(code string) bool {
	return CompiledPatterns.SubjectCode.MatchString(code)
}

// PasswordPolicy reports which complexity requirements a password satisfies.
type PasswordPolicy struct {
	MinLength      bool
	HasUppercase   bool
	HasDigit       bool
	HasSpecialChar bool
}

// CheckPassword evaluates the complexity rules for a candidate password:
// at least 8 characters, one uppercase letter, one digit and one special
// character.
func CheckPassword(password string) PasswordPolicy {
	policy := PasswordPolicy{
		MinLength: len(password) >= PasswordMinLength,
	}
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			policy.HasUppercase = true
		case unicode.IsDigit(r):
			policy.HasDigit = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			policy.HasSpecialChar = true
		}
	}
	return policy
}

// Satisfied reports whether every complexity requirement is met.
func (p PasswordPolicy) Satisfied() bool {
	return p.MinLength && p.HasUppercase && p.HasDigit && p.HasSpecialChar
}
