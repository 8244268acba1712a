package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidSubjectCode(t *testing.T) {
	valid := []string{"ENG", "MAT", "SCI", "ABC"}
	for _, code := range valid {
		assert.True(t, IsValidSubjectCode(code), code)
	}

	invalid := []string{"", "EN", "ENGL", "eng", "E1G", "EN G", "EN-", " ENG", "ENG "}
	for _, code := range invalid {
		assert.False(t, IsValidSubjectCode(code), code)
	}
}

func TestEmailPattern(t *testing.T) {
	valid := []string{"pat@example.com", "a.b+c@school.edu.au", "kid_1@mail.co"}
	for _, email := range valid {
		assert.True(t, CompiledPatterns.Email.MatchString(email), email)
	}

	invalid := []string{"", "pat", "pat@", "@example.com", "Pat@Example.com", "pat@example"}
	for _, email := range invalid {
		assert.False(t, CompiledPatterns.Email.MatchString(email), email)
	}
}

func TestCheckPassword(t *testing.T) {
	cases := []struct {
		password  string
		satisfied bool
	}{
		{"Secret123!", true},
		{"Abcdef1!", true},
		{"short1!A", true},
		{"", false},
		{"Sh1!", false},           // too short
		{"nouppercase1!", false},  // no uppercase
		{"NoDigitsHere!", false},  // no digit
		{"NoSpecial123", false},   // no special char
		{"alllowercase", false},
	}

	for _, tc := range cases {
		policy := CheckPassword(tc.password)
		assert.Equal(t, tc.satisfied, policy.Satisfied(), tc.password)
	}
}

func TestCheckPasswordFlags(t *testing.T) {
	policy := CheckPassword("abcdefgh")
	assert.True(t, policy.MinLength)
	assert.False(t, policy.HasUppercase)
	assert.False(t, policy.HasDigit)
	assert.False(t, policy.HasSpecialChar)

	policy = CheckPassword("A1!")
	assert.False(t, policy.MinLength)
	assert.True(t, policy.HasUppercase)
	assert.True(t, policy.HasDigit)
	assert.True(t, policy.HasSpecialChar)
}
