package cryptox

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

// Argon2id parameters for new hashes.
const (
	argonMemory      = 19 * 1024 // KiB
	argonIterations  = 2
	argonParallelism = 1
	argonKeyLength   = 32
	argonSaltLength  = 16
)

// Bounds accepted when verifying a stored hash. Anything outside them is
// treated as malformed rather than handed to argon2.IDKey.
const (
	argonMaxMemory      = 1024 * 1024 // KiB
	argonMaxIterations  = 16
	argonMaxParallelism = 16
	argonMinSaltLength  = 8
	argonMinKeyLength   = 16
	argonMaxKeyLength   = 64
)

// Argon2idHasher produces PHC formatted argon2id hashes. The pepper is
// appended to every password before hashing.
type Argon2idHasher struct {
	pepper string
}

func NewArgon2idHasher(pepper string) *Argon2idHasher {
	return &Argon2idHasher{pepper: pepper}
}

func (h *Argon2idHasher) Hash(password string) (string, error) {
	salt := make([]byte, argonSaltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}

	key := argon2.IDKey([]byte(password+h.pepper), salt, argonIterations, argonMemory, argonParallelism, argonKeyLength)

	return fmt.Sprintf(
		"$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		argonMemory,
		argonIterations,
		argonParallelism,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	), nil
}

// Verify recomputes the key with the parameters recorded in encoded.
func (h *Argon2idHasher) Verify(password, encoded string) error {
	// ["", "argon2id", "v=19", "m=X,t=Y,p=Z", salt, hash]
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[0] != "" {
		return fmt.Errorf("%w: expected 6 parts", ErrMalformedHash)
	}
	if parts[1] != AlgorithmArgon2id {
		return fmt.Errorf("%w: not argon2id", ErrMalformedHash)
	}
	if parts[2] != fmt.Sprintf("v=%d", argon2.Version) {
		return fmt.Errorf("%w: wrong version", ErrMalformedHash)
	}

	var mem, iters uint32
	var par uint8
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &mem, &iters, &par); err != nil {
		return fmt.Errorf("%w: parameters: %w", ErrMalformedHash, err)
	}
	if par < 1 || par > argonMaxParallelism || iters < 1 || iters > argonMaxIterations ||
		mem < 8*uint32(par) || mem > argonMaxMemory {
		return fmt.Errorf("%w: parameters out of range", ErrMalformedHash)
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return fmt.Errorf("%w: salt: %w", ErrMalformedHash, err)
	}
	want, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return fmt.Errorf("%w: key: %w", ErrMalformedHash, err)
	}
	if len(salt) < argonMinSaltLength || len(want) < argonMinKeyLength || len(want) > argonMaxKeyLength {
		return fmt.Errorf("%w: salt or key length", ErrMalformedHash)
	}

	got := argon2.IDKey([]byte(password+h.pepper), salt, iters, mem, par, uint32(len(want))) // #nosec G115
	if subtle.ConstantTimeCompare(got, want) == 1 {
		return nil
	}
	return ErrPasswordMismatch
}

func isArgon2idHash(encoded string) bool {
	return strings.HasPrefix(encoded, "$argon2id$")
}
