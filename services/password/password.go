package password

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/crypto/argon2"
)

// argon2id parameters, matching the library defaults the hashes in the
// vendors collection were created with.
const (
	memory     = 19456
	iterations = 2
	threads    = 1
	saltLen    = 16
	keyLen     = 32
)

var (
	// ErrWrongPassword is returned when a password does not match its hash.
	ErrWrongPassword = errors.New("password does not match")
	// ErrMismatch is returned when password and confirmation differ.
	ErrMismatch = errors.New("passwords do not match")
	// ErrTooShort is returned for passwords under ten characters.
	ErrTooShort = errors.New("password must contain at least 10 characters")
)

// Validate applies the password rules for create/change/reset flows.
func Validate(pass, confirm string) error {
	if pass != confirm {
		return ErrMismatch
	}
	if utf8.RuneCountInString(pass) < 10 {
		return ErrTooShort
	}
	return nil
}

// Hash derives an argon2id hash of the password, encoded as a PHC string.
func Hash(pass string) (string, error) {
	salt := make([]byte, saltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}

	key := argon2.IDKey([]byte(pass), salt, iterations, memory, threads, keyLen)

	encoded := fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		memory, iterations, threads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	)
	return encoded, nil
}

// Verify checks a password against an encoded hash. Returns
// ErrWrongPassword on mismatch; any other error means the stored hash is
// malformed.
func Verify(pass, encoded string) error {
	salt, key, m, t, p, err := decode(encoded)
	if err != nil {
		return err
	}

	candidate := argon2.IDKey([]byte(pass), salt, t, m, p, uint32(len(key)))
	if subtle.ConstantTimeCompare(candidate, key) != 1 {
		return ErrWrongPassword
	}
	return nil
}

func decode(encoded string) (salt, key []byte, m uint32, t uint32, p uint8, err error) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[1] != "argon2id" {
		return nil, nil, 0, 0, 0, errors.New("malformed password hash")
	}

	var version int
	if _, err = fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return nil, nil, 0, 0, 0, errors.New("malformed password hash")
	}
	if _, err = fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &m, &t, &p); err != nil {
		return nil, nil, 0, 0, 0, errors.New("malformed password hash")
	}

	if salt, err = base64.RawStdEncoding.DecodeString(parts[4]); err != nil {
		return nil, nil, 0, 0, 0, errors.New("malformed password hash")
	}
	if key, err = base64.RawStdEncoding.DecodeString(parts[5]); err != nil {
		return nil, nil, 0, 0, 0, errors.New("malformed password hash")
	}
	return salt, key, m, t, p, nil
}
