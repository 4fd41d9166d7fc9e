package utils

import (
	"fmt"
	"strings"
	"unicode"
)

// SanitizeName returns a sanitized version of the given display name with
// surrounding and repeated inner whitespace collapsed.
func SanitizeName(name string) string {
	return strings.Join(strings.Fields(name), " ")
}

// ValidateFeeTypeCode returns an error if the given fee type code is invalid.
// Codes are optional short identifiers like "TUITION" or "lab-fee".
func ValidateFeeTypeCode(code string) error {
	if code == "" {
		return nil
	}

	if !unicode.IsLetter(rune(code[0])) {
		return fmt.Errorf("code must start with a letter")
	}

	for _, r := range code {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '-' && r != '_' {
			return fmt.Errorf("code can only contain letters, numbers, hyphens, and underscores")
		}
	}

	return nil
}

// ValidateGrade returns an error if the given grade label is invalid.
func ValidateGrade(grade string) error {
	if grade == "" {
		return fmt.Errorf("grade cannot be empty")
	}

	for _, r := range grade {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '-' && r != ' ' {
			return fmt.Errorf("grade can only contain letters, numbers, hyphens, and spaces")
		}
	}

	return nil
}
