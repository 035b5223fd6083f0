package otp

import (
	"crypto/rand"
	"encoding/base32"
	"fmt"
	"math/big"

	"github.com/xlzd/gotp"
)

const (
	KindRandom = "random"
	KindHOTP   = "hotp"

	// Digits is the width of every generated code.
	Digits = 6

	hotpSecretBytes = 20
)

var codeSpace = big.NewInt(1_000_000)

// Generator produces one-time numeric codes.
type Generator interface {
	Generate() (string, error)
}

func NewGenerator(kind string) (Generator, error) {
	switch kind {
	case "", KindRandom:
		return NewRandomGenerator(), nil
	case KindHOTP:
		return NewGOTPGenerator(), nil
	default:
		return nil, fmt.Errorf("unknown otp generator %q", kind)
	}
}

// RandomGenerator draws codes uniformly from crypto/rand.
type RandomGenerator struct{}

func NewRandomGenerator() *RandomGenerator {
	return &RandomGenerator{}
}

func (g *RandomGenerator) Generate() (string, error) {
	n, err := rand.Int(rand.Reader, codeSpace)
	if err != nil {
		return "", fmt.Errorf("read random code: %w", err)
	}

	return fmt.Sprintf("%0*d", Digits, n.Int64()), nil
}

// GOTPGenerator derives the code from an HOTP over a fresh secret.
// HOTP truncation leaves a small modulo bias, so RandomGenerator stays the default.
type GOTPGenerator struct{}

func NewGOTPGenerator() *GOTPGenerator {
	return &GOTPGenerator{}
}

func (g *GOTPGenerator) Generate() (string, error) {
	raw := make([]byte, hotpSecretBytes)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("read hotp secret: %w", err)
	}

	secret := base32.StdEncoding.EncodeToString(raw)

	return gotp.NewDefaultHOTP(secret).At(0), nil
}
