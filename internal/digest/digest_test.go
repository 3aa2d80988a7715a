package digest

import (
	"regexp"
	"testing"
)

func TestMD5Hex_KnownVectors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty string", "", "d41d8cd98f00b204e9800998ecf8427e"},
		{"abc", "abc", "900150983cd24fb0d6963f7d28e17f72"},
		{"password", "password", "5f4dcc3b5aa765d61d8327deb882cf99"},
		{
			"pangram",
			"The quick brown fox jumps over the lazy dog",
			"9e107d9d372bb6826bd81d3542a419d6",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			if got := MD5Hex(tt.input); got != tt.want {
				t.Fatalf("MD5Hex(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestMD5Hex_Format(t *testing.T) {
	re := regexp.MustCompile(`^[0-9a-f]{32}$`)

	inputs := []string{"", "a", "some password", "ПарольWithUnicode∆", "white space \t\n"}
	for _, in := range inputs {
		got := MD5Hex(in)
		if !re.MatchString(got) {
			t.Fatalf("MD5Hex(%q) = %q, want 32 lowercase hex chars", in, got)
		}
	}
}

func TestMD5Hex_Deterministic(t *testing.T) {
	const in = "determinism-check"
	first := MD5Hex(in)
	for i := 0; i < 10; i++ {
		if got := MD5Hex(in); got != first {
			t.Fatalf("MD5Hex(%q) not deterministic: %q vs %q", in, got, first)
		}
	}
}
