package crypto

import (
	"crypto/hmac"
	"crypto/md5"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
)

type Algorithm string

const (
	// AlgorithmMD5 is md5(salt || key). Kept for keys issued by the
	// first secured deployment; prefer AlgorithmHMACSHA256.
	AlgorithmMD5        Algorithm = "md5"
	AlgorithmHMACSHA256 Algorithm = "hmac-sha256"
)

var ErrUnknownAlgorithm = errors.New("unknown api key algorithm")

// KeyGate checks request supplied API keys against a single configured
// digest.
type KeyGate struct {
	secret    []byte
	salt      []byte
	algorithm Algorithm
}

// NewKeyGate builds a gate expecting secret, the hex digest of the valid
// key. An empty secret yields a gate that rejects every key.
func NewKeyGate(secret, salt string, algorithm Algorithm) (*KeyGate, error) {
	if algorithm == "" {
		algorithm = AlgorithmHMACSHA256
	}
	switch algorithm {
	case AlgorithmMD5, AlgorithmHMACSHA256:
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, algorithm)
	}

	return &KeyGate{
		secret:    []byte(strings.ToLower(strings.TrimSpace(secret))),
		salt:      []byte(salt),
		algorithm: algorithm,
	}, nil
}

// Digest returns the lowercase hex digest of key. Operators use it to
// produce the configured secret.
func (g *KeyGate) Digest(key string) string {
	switch g.algorithm {
	case AlgorithmMD5:
		sum := md5.Sum(append(append([]byte{}, g.salt...), key...))
		return hex.EncodeToString(sum[:])
	default:
		mac := hmac.New(sha256.New, g.salt)
		mac.Write([]byte(key))
		return hex.EncodeToString(mac.Sum(nil))
	}
}

// Authorize reports whether key digests to the configured secret.
func (g *KeyGate) Authorize(key string) bool {
	if len(g.secret) == 0 || key == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(g.Digest(key)), g.secret) == 1
}

func (g *KeyGate) Algorithm() Algorithm {
	return g.algorithm
}
