package cryptox

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrPasswordMismatch is returned when a password does not match its hash.
	ErrPasswordMismatch = errors.New("password does not match")

	// ErrMalformedHash is returned when a stored hash cannot be parsed.
	ErrMalformedHash = errors.New("invalid hash format")

	// ErrUnknownAlgorithm is returned for a hash or algorithm name no hasher
	// recognises.
	ErrUnknownAlgorithm = errors.New("unknown password algorithm")
)

// Supported algorithm names.
const (
	AlgorithmBcrypt   = "bcrypt"
	AlgorithmArgon2id = "argon2id"
)

// PasswordHasher produces and checks one-way salted password hashes.
// Verify returns nil on a match and ErrPasswordMismatch otherwise.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, encoded string) error
}

// MultiHasher hashes with Primary and verifies any hash whose format one of
// its hashers recognises. Switching algorithms therefore never invalidates
// hashes written before the switch.
type MultiHasher struct {
	Primary  PasswordHasher
	Bcrypt   *BcryptHasher
	Argon2id *Argon2idHasher
}

// NewPasswordHasher returns a MultiHasher whose primary algorithm is
// algorithm. cost applies to bcrypt, pepper to argon2id.
func NewPasswordHasher(algorithm string, cost int, pepper string) (*MultiHasher, error) {
	bc, err := NewBcryptHasher(cost)
	if err != nil {
		return nil, err
	}
	ar := NewArgon2idHasher(pepper)

	m := &MultiHasher{Bcrypt: bc, Argon2id: ar}
	switch strings.ToLower(algorithm) {
	case "", AlgorithmBcrypt:
		m.Primary = bc
	case AlgorithmArgon2id:
		m.Primary = ar
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, algorithm)
	}
	return m, nil
}

func (m *MultiHasher) Hash(password string) (string, error) {
	return m.Primary.Hash(password)
}

func (m *MultiHasher) Verify(password, encoded string) error {
	switch {
	case isArgon2idHash(encoded) && m.Argon2id != nil:
		return m.Argon2id.Verify(password, encoded)
	case isBcryptHash(encoded) && m.Bcrypt != nil:
		return m.Bcrypt.Verify(password, encoded)
	default:
		return fmt.Errorf("%w: %w", ErrMalformedHash, ErrUnknownAlgorithm)
	}
}
