package utils

import "testing"

func TestSanitizeName(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"   ", ""},
		{"Tuition", "Tuition"},
		{"  Tuition Fee  ", "Tuition Fee"},
		{"Lab\t Fee", "Lab Fee"},
		{"a  b   c", "a b c"},
	}
	for _, c := range cases {
		if got := SanitizeName(c.in); got != c.want {
			t.Errorf("SanitizeName(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestValidateFeeTypeCode(t *testing.T) {
	valid := []string{"", "TUITION", "lab-fee", "exam_2024", "a"}
	for _, c := range valid {
		if err := ValidateFeeTypeCode(c); err != nil {
			t.Errorf("ValidateFeeTypeCode(%q) = %v, want nil", c, err)
		}
	}

	invalid := []string{"1code", "-code", "has space", "sla/sh", "dot.ted"}
	for _, c := range invalid {
		if err := ValidateFeeTypeCode(c); err == nil {
			t.Errorf("ValidateFeeTypeCode(%q) = nil, want error", c)
		}
	}
}

func TestValidateGrade(t *testing.T) {
	valid := []string{"1", "Grade 10", "UKG", "Pre-KG"}
	for _, c := range valid {
		if err := ValidateGrade(c); err != nil {
			t.Errorf("ValidateGrade(%q) = %v, want nil", c, err)
		}
	}

	invalid := []string{"", "10/A", "grade_1"}
	for _, c := range invalid {
		if err := ValidateGrade(c); err == nil {
			t.Errorf("ValidateGrade(%q) = nil, want error", c)
		}
	}
}
