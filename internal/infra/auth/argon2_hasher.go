// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"

	"passport/config"
	"passport/internal/domain/service"
	"passport/internal/errors"
)

// Default argon2id cost parameters. Memory-hard enough to resist offline
// brute force while keeping interactive logins under ~100ms on server hardware.
const (
	defaultMemoryKiB   = 64 * 1024
	defaultIterations  = 1
	defaultParallelism = 4
	saltLength         = 16
	keyLength          = 32
)

// argon2Hasher is a concrete implementation of the PasswordHasher interface using argon2id.
// Hashes are stored in PHC string format, so the parameters travel with the hash
// and Check works across parameter changes.
type argon2Hasher struct {
	memoryKiB   uint32
	iterations  uint32
	parallelism uint8
}

// NewArgon2Hasher is the constructor for argon2Hasher.
// Cost parameters come from config; zero values select the defaults.
func NewArgon2Hasher(cfg *config.Config) service.PasswordHasher {
	hasher := &argon2Hasher{
		memoryKiB:   defaultMemoryKiB,
		iterations:  defaultIterations,
		parallelism: defaultParallelism,
	}

	if cfg == nil || cfg.Auth == nil || cfg.Auth.Argon2 == nil {
		return hasher
	}

	params := cfg.Auth.Argon2
	if params.MemoryKiB > 0 {
		hasher.memoryKiB = params.MemoryKiB
	}
	if params.Iterations > 0 {
		hasher.iterations = params.Iterations
	}
	if params.Parallelism > 0 {
		hasher.parallelism = params.Parallelism
	}

	return hasher
}

// Hash generates a salted argon2id hash from a plaintext password.
// A fresh random salt makes the output differ between calls for the same input.
func (h *argon2Hasher) Hash(password string) (string, error) {
	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", errors.Wrap(err, "failed to generate salt")
	}

	key := argon2.IDKey([]byte(password), salt, h.iterations, h.memoryKiB, h.parallelism, keyLength)

	encoded := fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		h.memoryKiB,
		h.iterations,
		h.parallelism,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	)

	return encoded, nil
}

// Check compares a plaintext password with a stored argon2id hash.
// The final comparison is constant-time over the derived keys, so timing does
// not leak which byte of the candidate first mismatched. Malformed stored
// hashes return false rather than an error.
func (h *argon2Hasher) Check(password, hash string) bool {
	salt, key, memoryKiB, iterations, parallelism, err := decodeHash(hash)
	if err != nil {
		return false
	}

	candidate := argon2.IDKey([]byte(password), salt, iterations, memoryKiB, parallelism, uint32(len(key)))

	return subtle.ConstantTimeCompare(key, candidate) == 1
}

// decodeHash parses a PHC-format argon2id string back into its salt, derived
// key and cost parameters.
func decodeHash(encoded string) (salt, key []byte, memoryKiB, iterations uint32, parallelism uint8, err error) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[0] != "" || parts[1] != "argon2id" {
		return nil, nil, 0, 0, 0, errors.New("malformed argon2id hash")
	}

	var version int
	if _, err = fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return nil, nil, 0, 0, 0, errors.Wrap(err, "failed to parse argon2 version")
	}
	if version != argon2.Version {
		return nil, nil, 0, 0, 0, errors.Errorf("unsupported argon2 version %d", version)
	}

	if _, err = fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memoryKiB, &iterations, &parallelism); err != nil {
		return nil, nil, 0, 0, 0, errors.Wrap(err, "failed to parse argon2 parameters")
	}
	if memoryKiB == 0 || iterations == 0 || parallelism == 0 {
		return nil, nil, 0, 0, 0, errors.New("invalid argon2 parameters")
	}

	salt, err = base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return nil, nil, 0, 0, 0, errors.Wrap(err, "failed to decode salt")
	}

	key, err = base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil || len(key) == 0 {
		return nil, nil, 0, 0, 0, errors.New("failed to decode derived key")
	}

	return salt, key, memoryKiB, iterations, parallelism, nil
}
