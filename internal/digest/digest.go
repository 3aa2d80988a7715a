// Package digest computes the password digest sent to the registration
// endpoint. The remote API expects the password as a 32-character lowercase
// hex MD5 string, so MD5 here is a wire format, not a security measure.
package digest

import (
	"crypto/md5"
	"encoding/hex"
)

// MD5Hex returns the MD5 digest of input as 32 lowercase hex characters.
func MD5Hex(input string) string {
	sum := md5.Sum([]byte(input))
	return hex.EncodeToString(sum[:])
}
