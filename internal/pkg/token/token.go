// Package token issues pending tokens for anonymous orders and checks them against
// the bcrypt hash kept in the order row.
package token

import (
	"crypto/rand"
	"encoding/base64"
	"errors"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrGenerationFailed = errors.New("pending token generation failed")
	ErrHashingFailed    = errors.New("pending token hashing failed")
	ErrMismatch         = errors.New("pending token mismatch")
	ErrInvalidToken     = errors.New("invalid pending token")
)

const (
	DefaultCost = bcrypt.DefaultCost
	tokenBytes  = 32
)

type Issuer interface {
	Issue() (plain string, hash string, err error)
	Verify(hash, plain string) error
}

type BcryptIssuer struct {
	cost int
}

func NewBcryptIssuer() *BcryptIssuer {
	return &BcryptIssuer{cost: DefaultCost}
}

// NewBcryptIssuerWithCost is meant for tests where DefaultCost is too slow.
func NewBcryptIssuerWithCost(cost int) *BcryptIssuer {
	return &BcryptIssuer{cost: cost}
}

func (i *BcryptIssuer) Issue() (string, string, error) {
	buf := make([]byte, tokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", "", ErrGenerationFailed
	}
	plain := base64.RawURLEncoding.EncodeToString(buf)

	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), i.cost)
	if err != nil {
		return "", "", ErrHashingFailed
	}
	return plain, string(hashed), nil
}

func (i *BcryptIssuer) Verify(hash, plain string) error {
	if hash == "" || plain == "" {
		return ErrInvalidToken
	}

	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return ErrMismatch
		}
		return err
	}

	return nil
}
