// Package cryptox derives and checks the credential hash stored for locally
// registered accounts.
package cryptox

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

const (
	hashScheme = "argon2id"
	saltSize   = 16
	keySize    = 32
)

var ErrMalformedHash = errors.New("malformed credential hash")

// DeriveKey stretches password with salt using Argon2id.
func DeriveKey(password []byte, salt []byte) []byte {
	return argon2.IDKey(password, salt, 1, 64*1024, 4, keySize)
}

// HashPassword returns an encoded "argon2id$<salt>$<key>" string suitable for
// the local_users.passwordHash column.
func HashPassword(password []byte) (string, error) {
	salt := make([]byte, saltSize)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}
	key := DeriveKey(password, salt)

	enc := base64.RawStdEncoding
	return strings.Join([]string{hashScheme, enc.EncodeToString(salt), enc.EncodeToString(key)}, "$"), nil
}

// VerifyPassword reports whether password matches the encoded hash.
func VerifyPassword(password []byte, encoded string) (bool, error) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 3 || parts[0] != hashScheme {
		return false, ErrMalformedHash
	}

	enc := base64.RawStdEncoding
	salt, err := enc.DecodeString(parts[1])
	if err != nil {
		return false, ErrMalformedHash
	}
	want, err := enc.DecodeString(parts[2])
	if err != nil {
		return false, ErrMalformedHash
	}

	got := DeriveKey(password, salt)
	return subtle.ConstantTimeCompare(got, want) == 1, nil
}

// Wipe zeroes b in place. Nil is allowed.
func Wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
