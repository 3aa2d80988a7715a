package credgen

import (
	"strings"

	"github.com/dmitrijs2005/accmachine/internal/common"
)

const (
	lowerChars = "abcdefghijklmnopqrstuvwxyz"
	upperChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	digitChars = "0123456789"

	localChars    = lowerChars + digitChars
	passwordChars = lowerChars + upperChars + digitChars
)

// Generator produces credentials according to its Profile. Safe for
// sequential use; every call is independent and consumes fresh entropy.
type Generator struct {
	profile Profile
}

// New validates the profile and returns a Generator bound to it.
func New(p Profile) (*Generator, error) {
	if err := p.validate(); err != nil {
		return nil, err
	}
	return &Generator{profile: p}, nil
}

// Email returns a pseudo-random address local@domain. The local part starts
// with a lowercase letter followed by lowercase letters and digits; the
// domain is drawn from the profile list.
func (g *Generator) Email() string {
	length := g.profile.LocalMinLen + randIndex(g.profile.LocalMaxLen-g.profile.LocalMinLen+1)

	var sb strings.Builder
	sb.Grow(length + 1 + 16)
	sb.WriteByte(lowerChars[randIndex(len(lowerChars))])
	for i := 1; i < length; i++ {
		sb.WriteByte(localChars[randIndex(len(localChars))])
	}
	sb.WriteByte('@')
	sb.WriteString(g.profile.Domains[randIndex(len(g.profile.Domains))])
	return sb.String()
}

// Password returns a pseudo-random password of the profile length containing
// at least one lowercase letter, one uppercase letter and one digit.
func (g *Generator) Password() string {
	length := g.profile.PasswordLength

	buf := make([]byte, length)
	buf[0] = lowerChars[randIndex(len(lowerChars))]
	buf[1] = upperChars[randIndex(len(upperChars))]
	buf[2] = digitChars[randIndex(len(digitChars))]
	for i := 3; i < length; i++ {
		buf[i] = passwordChars[randIndex(len(passwordChars))]
	}

	// Fisher–Yates, so the mandatory classes do not sit at fixed positions.
	for i := length - 1; i > 0; i-- {
		j := randIndex(i + 1)
		buf[i], buf[j] = buf[j], buf[i]
	}

	return string(buf)
}

// randIndex returns a uniformly distributed int in [0, n). n must be in
// (0, 256); rejection sampling removes the modulo bias.
func randIndex(n int) int {
	limit := 256 - 256%n
	for {
		b := common.GenerateRandByteArray(1)[0]
		if int(b) < limit {
			return int(b) % n
		}
	}
}
