package utils

import "testing"

func TestValidateEmail(t *testing.T) {
	valid := []string{
		"artist@example.com",
		"first.last+tag@sub.domain.org",
	}
	for _, email := range valid {
		if !ValidateEmail(email) {
			t.Errorf("expected %q to be valid", email)
		}
	}

	invalid := []string{
		"",
		"plainaddress",
		"@example.com",
		"user@",
		"user@domain",
		"user name@example.com",
	}
	for _, email := range invalid {
		if ValidateEmail(email) {
			t.Errorf("expected %q to be invalid", email)
		}
	}
}

func TestSanitizeInput(t *testing.T) {
	if got := SanitizeInput("  hello \x00world  "); got != "hello world" {
		t.Fatalf("unexpected sanitized value: %q", got)
	}
	if got := SanitizeInput("\t plain \n"); got != "plain" {
		t.Fatalf("unexpected sanitized value: %q", got)
	}
}
