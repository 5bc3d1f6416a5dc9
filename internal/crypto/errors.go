package crypto

import "errors"

// Sentinel errors returned by the note cipher to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrEmptyPassword is returned when encryption or decryption is
	// requested with an empty password.
	ErrEmptyPassword = errors.New("password must not be empty")

	// ErrMalformedEnvelope is returned when an encrypted note envelope is
	// structurally incomplete: unknown KDF, missing salt, IV or auth tag.
	ErrMalformedEnvelope = errors.New("malformed encrypted note envelope")

	// ErrDecryptionFailed is returned when GCM authentication fails during
	// decryption. This almost always means the password is wrong, but it
	// also covers ciphertext that was modified after embedding.
	ErrDecryptionFailed = errors.New("decryption failed")

	// ErrIntegrityMismatch is returned when decryption succeeds but the
	// SHA-256 hash of the recovered plaintext does not match the hash
	// recorded at encryption time.
	ErrIntegrityMismatch = errors.New("note content integrity mismatch")
)
