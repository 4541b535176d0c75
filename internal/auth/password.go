package auth

import "golang.org/x/crypto/bcrypt"

// Hasher hashes and verifies passwords with bcrypt. The cost is fixed
// at construction and read-only afterwards.
type Hasher struct {
	cost int
}

// NewHasher returns a Hasher with the given bcrypt cost.
func NewHasher(cost int) *Hasher {
	return &Hasher{cost: cost}
}

// Hash returns a salted bcrypt digest of plain. Two calls with the
// same input produce different digests; both verify.
func (h *Hasher) Hash(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword(truncate(plain), h.cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Verify reports whether plain matches digest. Malformed digests fail
// closed: the comparison returns false instead of an error, so a
// corrupt stored hash is indistinguishable from a wrong password.
func (h *Hasher) Verify(plain, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), truncate(plain)) == nil
}

// truncate caps input at bcrypt's 72-byte limit. Passwords may be up
// to 100 characters; bcrypt only reads the first 72 bytes, and newer
// x/crypto versions reject longer input outright, so the cap is
// applied consistently on both hash and verify.
func truncate(plain string) []byte {
	b := []byte(plain)
	if len(b) > 72 {
		b = b[:72]
	}
	return b
}
