// Package cryptox holds the credential schemes used by the account registry.
// A scheme turns the credential given at registration into the stored form
// and later decides whether a presented credential matches it.
package cryptox

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/docqa/internal/common"
	"golang.org/x/crypto/argon2"
)

const (
	SchemePlain    = "plain"
	SchemeArgon2id = "argon2id"

	saltSize = 16
)

// Scheme seals credentials for storage and matches presented ones.
type Scheme interface {
	Name() string
	Seal(credential string) (string, error)
	Match(stored, credential string) bool
}

// NewScheme returns the scheme registered under name.
func NewScheme(name string) (Scheme, error) {
	switch name {
	case SchemePlain, "":
		return Plain{}, nil
	case SchemeArgon2id:
		return Argon2id{}, nil
	default:
		return nil, fmt.Errorf("unknown credential scheme %q", name)
	}
}

// Plain stores the credential as given and compares in constant time.
type Plain struct{}

func (Plain) Name() string { return SchemePlain }

func (Plain) Seal(credential string) (string, error) {
	return credential, nil
}

func (Plain) Match(stored, credential string) bool {
	return subtle.ConstantTimeCompare([]byte(stored), []byte(credential)) == 1
}

// Argon2id stores "argon2id$<salt>$<verifier>" where verifier is the SHA-256
// of the argon2id key derived from the credential and a random salt.
type Argon2id struct{}

func (Argon2id) Name() string { return SchemeArgon2id }

func (Argon2id) Seal(credential string) (string, error) {
	salt := common.GenerateRandByteArray(saltSize)
	key := DeriveKey([]byte(credential), salt)
	defer common.WipeByteArray(key)

	return strings.Join([]string{
		SchemeArgon2id,
		hex.EncodeToString(salt),
		hex.EncodeToString(MakeVerifier(key)),
	}, "$"), nil
}

func (Argon2id) Match(stored, credential string) bool {
	parts := strings.Split(stored, "$")
	if len(parts) != 3 || parts[0] != SchemeArgon2id {
		return false
	}

	salt, err := hex.DecodeString(parts[1])
	if err != nil {
		return false
	}
	want, err := hex.DecodeString(parts[2])
	if err != nil {
		return false
	}

	key := DeriveKey([]byte(credential), salt)
	defer common.WipeByteArray(key)

	return subtle.ConstantTimeCompare(MakeVerifier(key), want) == 1
}

// MakeVerifier hashes a derived key so the key itself is never stored.
func MakeVerifier(key []byte) []byte {
	hash := sha256.Sum256(key)
	return hash[:]
}

// DeriveKey derives a 32-byte argon2id key.
func DeriveKey(password []byte, salt []byte) []byte {
	return argon2.IDKey(password, salt, 1, 64*1024, 4, 32)
}
