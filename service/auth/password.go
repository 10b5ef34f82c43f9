package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/crypto/pbkdf2"
)

const (
	hashAlgorithm  = "pbkdf2_sha256"
	hashIterations = 260000
	saltLength     = 16
	keyLength      = 32
)

// HashPassword derives a PBKDF2-HMAC-SHA256 digest with a fresh random salt,
// serialized as <algorithm>$<iterations>$<salt-hex>$<hash-hex>.
func HashPassword(password string) (string, error) {
	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generating salt: %w", err)
	}
	key := pbkdf2.Key([]byte(password), salt, hashIterations, keyLength, sha256.New)
	return fmt.Sprintf("%s$%d$%s$%s", hashAlgorithm, hashIterations, hex.EncodeToString(salt), hex.EncodeToString(key)), nil
}

// VerifyPassword checks a plaintext password against a stored digest. Digests
// in the legacy <salt>$<sha256-hex> format (no iteration count) are still
// accepted. Malformed digests verify as false.
func VerifyPassword(password, digest string) bool {
	parts := strings.Split(digest, "$")
	switch len(parts) {
	case 4:
		if parts[0] != hashAlgorithm {
			return false
		}
		iterations, err := strconv.Atoi(parts[1])
		if err != nil || iterations <= 0 {
			return false
		}
		salt, err := hex.DecodeString(parts[2])
		if err != nil {
			return false
		}
		expected, err := hex.DecodeString(parts[3])
		if err != nil || len(expected) == 0 {
			return false
		}
		key := pbkdf2.Key([]byte(password), salt, iterations, len(expected), sha256.New)
		return subtle.ConstantTimeCompare(key, expected) == 1
	case 2:
		// Legacy format: salt is a hex string concatenated into the hash input.
		sum := sha256.Sum256([]byte(password + parts[0]))
		return subtle.ConstantTimeCompare([]byte(hex.EncodeToString(sum[:])), []byte(parts[1])) == 1
	default:
		return false
	}
}
