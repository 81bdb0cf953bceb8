package hash

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// PasswordHasher provides hashing logic to securely store passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash string, password string) bool
}

// SHA256Hasher keys an HMAC-SHA256 with the configured salt.
type SHA256Hasher struct {
	salt string
}

func NewSHA256Hasher(salt string) *SHA256Hasher {
	return &SHA256Hasher{salt: salt}
}

func (h *SHA256Hasher) Hash(password string) (string, error) {
	mac := hmac.New(sha256.New, []byte(h.salt))

	if _, err := mac.Write([]byte(password)); err != nil {
		return "", err
	}

	return hex.EncodeToString(mac.Sum(nil)), nil
}

func (h *SHA256Hasher) Compare(hash string, password string) bool {
	got, err := h.Hash(password)
	if err != nil {
		return false
	}
	return hmac.Equal([]byte(got), []byte(hash))
}
