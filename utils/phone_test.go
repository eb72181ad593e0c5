package utils

import "testing"

func TestNormalizePhoneNumber(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"+1 (555) 123-4567", "+15551234567"},
		{"555.123.4567", "5551234567"},
		{"  +44 20 7946 0958", "+442079460958"},
		{"0612345678", "0612345678"},
		{"", ""},
	}
	for _, c := range cases {
		if got := NormalizePhoneNumber(c.in); got != c.want {
			t.Errorf("NormalizePhoneNumber(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestValidatePhoneNumber(t *testing.T) {
	valid := []string{"+15551234567", "5551234", "+442079460958", "123456789012345"}
	for _, n := range valid {
		if !ValidatePhoneNumber(n) {
			t.Errorf("ValidatePhoneNumber(%q) = false, want true", n)
		}
	}

	invalid := []string{"", "123456", "+1 23", "1234567890123456"}
	for _, n := range invalid {
		if ValidatePhoneNumber(n) {
			t.Errorf("ValidatePhoneNumber(%q) = true, want false", n)
		}
	}
}
