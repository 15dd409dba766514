// Package digest computes salted password digests.
package digest

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
)

// DefaultSaltLength is the number of random bytes used for a salt
const DefaultSaltLength = 16

// ErrInvalidArgument is returned for a non positive salt length
var ErrInvalidArgument = errors.New("invalid argument")

// SHA256Hex returns the uppercase hex SHA-256 of salt followed by plain
func SHA256Hex(plain, salt string) string {
	sum := sha256.Sum256([]byte(salt + plain))
	return strings.ToUpper(hex.EncodeToString(sum[:]))
}

// GenerateSalt returns n random bytes encoded as standard base64
func GenerateSalt(n int) (string, error) {
	if n <= 0 {
		return "", fmt.Errorf("%w: salt length %d", ErrInvalidArgument, n)
	}
	data := make([]byte, n)
	if _, err := rand.Read(data); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}
	return base64.StdEncoding.EncodeToString(data), nil
}
