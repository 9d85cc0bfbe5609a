// Package password wraps bcrypt hashing so callers never touch the raw
// primitive. Each Hash call salts independently, so two hashes of the same
// plaintext differ while both verify.
package password

import "golang.org/x/crypto/bcrypt"

const cost = 10

// Hash produces a salted one-way digest of plain.
func Hash(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Verify reports whether plain reproduces hash. A malformed or corrupt hash
// yields false rather than an error; callers treat both cases as a failed
// credential check.
func Verify(plain, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
