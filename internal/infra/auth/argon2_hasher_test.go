package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"passport/config"
)

// testHasher uses reduced cost parameters so the suite stays fast.
func testHasher() *argon2Hasher {
	return &argon2Hasher{
		memoryKiB:   8 * 1024,
		iterations:  1,
		parallelism: 1,
	}
}

func TestArgon2Hasher_HashAndCheck(t *testing.T) {
	hasher := testHasher()

	password := "Secret123"
	hash, err := hasher.Hash(password)
	assert.NoError(t, err)
	assert.NotEmpty(t, hash)
	assert.NotEqual(t, password, hash)
	assert.True(t, strings.HasPrefix(hash, "$argon2id$"))

	assert.True(t, hasher.Check(password, hash))
	assert.False(t, hasher.Check("Secret124", hash))
	assert.False(t, hasher.Check("", hash))
}

func TestArgon2Hasher_HashIsSalted(t *testing.T) {
	hasher := testHasher()

	password := "correct horse battery staple"
	first, err := hasher.Hash(password)
	assert.NoError(t, err)
	second, err := hasher.Hash(password)
	assert.NoError(t, err)

	// Different salts must yield different encodings that both verify.
	assert.NotEqual(t, first, second)
	assert.True(t, hasher.Check(password, first))
	assert.True(t, hasher.Check(password, second))
}

func TestArgon2Hasher_MalformedHash(t *testing.T) {
	hasher := testHasher()

	malformed := []string{
		"",
		"not-a-hash",
		"$argon2id$",
		"$argon2i$v=19$m=8192,t=1,p=1$c2FsdA$a2V5",
		"$argon2id$v=18$m=8192,t=1,p=1$c2FsdA$a2V5",
		"$argon2id$v=19$m=0,t=0,p=0$c2FsdA$a2V5",
		"$argon2id$v=19$m=8192,t=1,p=1$!!!$a2V5",
		"$argon2id$v=19$m=8192,t=1,p=1$c2FsdA$!!!",
	}

	for _, hash := range malformed {
		assert.False(t, hasher.Check("Secret123", hash), "expected false for malformed hash: %q", hash)
	}
}

func TestArgon2Hasher_ParametersTravelWithHash(t *testing.T) {
	low := testHasher()
	high := &argon2Hasher{memoryKiB: 16 * 1024, iterations: 2, parallelism: 2}

	password := "Secret123"
	hash, err := low.Hash(password)
	assert.NoError(t, err)

	// A hasher configured with different costs still verifies an old hash,
	// because the parameters are encoded in the PHC string.
	assert.True(t, high.Check(password, hash))
}

func TestNewArgon2Hasher_ConfigOverrides(t *testing.T) {
	cfg := &config.Config{
		Auth: &config.AuthConfig{
			Argon2: &config.Argon2Config{
				MemoryKiB:   32 * 1024,
				Iterations:  2,
				Parallelism: 2,
			},
		},
	}

	hasher, ok := NewArgon2Hasher(cfg).(*argon2Hasher)
	assert.True(t, ok)
	assert.Equal(t, uint32(32*1024), hasher.memoryKiB)
	assert.Equal(t, uint32(2), hasher.iterations)
	assert.Equal(t, uint8(2), hasher.parallelism)

	defaulted, ok := NewArgon2Hasher(&config.Config{}).(*argon2Hasher)
	assert.True(t, ok)
	assert.Equal(t, uint32(defaultMemoryKiB), defaulted.memoryKiB)
	assert.Equal(t, uint32(defaultIterations), defaulted.iterations)
	assert.Equal(t, uint8(defaultParallelism), defaulted.parallelism)
}

func TestArgon2Hasher_LongInput(t *testing.T) {
	hasher := testHasher()

	// The contract allows any UTF-8 input up to a reasonable bound.
	long := strings.Repeat("päss", 256) // ~1KB
	hash, err := hasher.Hash(long)
	assert.NoError(t, err)
	assert.True(t, hasher.Check(long, hash))
}
