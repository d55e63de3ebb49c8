package crypto

import (
	"crypto/rand"
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/pbkdf2"
)

const (
	SaltLength = 16
	Iterations = 1000
	KeyLength  = 64
)

// Credentials is a password hash together with the salt it was derived
// from, both hex encoded as they are stored. The two are never written
// separately.
type Credentials struct {
	Hash string
	Salt string
}

// NewSalt returns SaltLength bytes from the system CSPRNG.
func NewSalt() ([]byte, error) {
	salt := make([]byte, SaltLength)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("generate salt: %w", err)
	}
	return salt, nil
}

// DeriveHash is PBKDF2-SHA512 over the UTF-8 password bytes.
func DeriveHash(password string, salt []byte) []byte {
	return pbkdf2.Key([]byte(password), salt, Iterations, KeyLength, sha512.New)
}

// Verify recomputes the hash of candidate with the stored salt and
// compares it to storedHash in constant time.
func Verify(candidate string, storedHash, storedSalt []byte) bool {
	if len(storedHash) == 0 {
		return false
	}
	return subtle.ConstantTimeCompare(DeriveHash(candidate, storedSalt), storedHash) == 1
}

// HashPassword draws a fresh salt and derives the hash for password.
func HashPassword(password string) (Credentials, error) {
	salt, err := NewSalt()
	if err != nil {
		return Credentials{}, err
	}

	return Credentials{
		Hash: hex.EncodeToString(DeriveHash(password, salt)),
		Salt: hex.EncodeToString(salt),
	}, nil
}

// VerifyHex is Verify for the stored hex representation. Undecodable
// input never verifies.
func VerifyHex(candidate string, c Credentials) bool {
	hash, err := hex.DecodeString(c.Hash)
	if err != nil {
		return false
	}
	salt, err := hex.DecodeString(c.Salt)
	if err != nil {
		return false
	}
	return Verify(candidate, hash, salt)
}
