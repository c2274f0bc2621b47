package crypto

//go:generate mockgen -source=interfaces.go -destination=../mock/password_hasher_mock.go -package=mock

// PasswordHasher derives and verifies salted password digests.
//
// A digest is computed over "<password>.<salt>" with a slow, randomized
// scheme, so hashing the same input twice yields different digests and only
// Compare can tell whether a password matches.
type PasswordHasher interface {
	// GenerateSalt returns a fresh per-user random salt.
	GenerateSalt() (string, error)

	// Hash derives the digest of password combined with salt.
	Hash(password, salt string) (string, error)

	// Compare reports whether password combined with salt matches digest.
	// A mismatch is not an error; malformed digests are.
	Compare(digest, password, salt string) (bool, error)

	// CompareDummy performs a comparison of the same cost as Compare against
	// a fixed digest. It is used when no account exists, so that an unknown
	// username takes as long to reject as a wrong password.
	CompareDummy(password string)
}
