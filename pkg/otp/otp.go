package otp

import (
	"github.com/xlzd/gotp"
)

const (
	secretLength = 16
	interval     = 30
)

// Generator produces one-time codes of a fixed number of digits.
type Generator interface {
	Generate(digits int) string
}

type GOTPGenerator struct{}

func NewGOTPGenerator() *GOTPGenerator {
	return &GOTPGenerator{}
}

// Generate derives a TOTP value from a fresh random secret, so every call
// yields an independent code.
func (g *GOTPGenerator) Generate(digits int) string {
	secret := gotp.RandomSecret(secretLength)
	return gotp.NewTOTP(secret, digits, interval, nil).Now()
}
