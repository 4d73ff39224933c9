// Package password hashes and verifies user passwords with bcrypt.
package password

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// MaxLength is the longest password bcrypt accepts, in bytes.
const MaxLength = 72

var ErrTooLong = errors.New("password longer than 72 bytes")

// Hasher is a one-way, salted and deliberately slow password hash.
type Hasher interface {
	Hash(plain string) (string, error)
	Verify(plain, hash string) bool
}

// Bcrypt is a stateless Hasher. The zero value uses bcrypt.DefaultCost.
type Bcrypt struct {
	Cost int
}

func NewBcrypt(cost int) Bcrypt { return Bcrypt{Cost: cost} }

func (b Bcrypt) Hash(plain string) (string, error) {
	if len(plain) > MaxLength {
		return "", ErrTooLong
	}
	cost := b.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	h, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", fmt.Errorf("bcrypt hash: %w", err)
	}
	return string(h), nil
}

// Verify reports whether plain matches hash. A malformed hash never matches.
func (b Bcrypt) Verify(plain, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
