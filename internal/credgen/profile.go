// Package credgen generates synthetic credentials (email addresses and
// passwords) used to register throwaway accounts. Randomness comes from
// crypto/rand; outputs are syntactically valid but intentionally meaningless.
package credgen

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

const passwordMinLength = 8

// Profile controls the shape of generated credentials. Hosts pass a Profile
// into New explicitly instead of relying on package-level state.
type Profile struct {
	// Domains to draw the email domain from.
	Domains []string `yaml:"domains"`
	// LocalMinLen and LocalMaxLen bound the email local-part length.
	LocalMinLen int `yaml:"local_min_len"`
	LocalMaxLen int `yaml:"local_max_len"`
	// PasswordLength is the generated password length, never below 8.
	PasswordLength int `yaml:"password_length"`
}

// Default returns the stock profile.
func Default() Profile {
	return Profile{
		Domains: []string{
			"gmail.com", "outlook.com", "yahoo.com", "hotmail.com",
			"icloud.com", "mail.com", "gmx.com", "proton.me",
		},
		LocalMinLen:    8,
		LocalMaxLen:    12,
		PasswordLength: 12,
	}
}

// LoadProfile reads a YAML profile from path. Keys absent from the file keep
// their Default() values, so a partial profile is valid.
func LoadProfile(path string) (Profile, error) {
	p := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return Profile{}, fmt.Errorf("read profile: %w", err)
	}
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Profile{}, fmt.Errorf("parse profile: %w", err)
	}
	if err := p.validate(); err != nil {
		return Profile{}, err
	}
	return p, nil
}

func (p Profile) validate() error {
	if len(p.Domains) == 0 {
		return fmt.Errorf("profile: domain list is empty")
	}
	for _, d := range p.Domains {
		if !strings.Contains(d, ".") || strings.Contains(d, "@") {
			return fmt.Errorf("profile: invalid domain %q", d)
		}
	}
	if p.LocalMinLen < 1 {
		return fmt.Errorf("profile: local_min_len must be positive, got %d", p.LocalMinLen)
	}
	if p.LocalMaxLen < p.LocalMinLen {
		return fmt.Errorf("profile: local_max_len %d below local_min_len %d", p.LocalMaxLen, p.LocalMinLen)
	}
	if p.PasswordLength < passwordMinLength {
		return fmt.Errorf("profile: password_length must be at least %d, got %d", passwordMinLength, p.PasswordLength)
	}
	return nil
}
