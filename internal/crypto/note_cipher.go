// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"fmt"
	"io"

	"golang.org/x/crypto/pbkdf2"

	"github.com/eyad6789/images-with-memory/internal/utils"
	"github.com/eyad6789/images-with-memory/models"
)

const (
	// DefaultKDFIterations is the PBKDF2 iteration count used for new
	// envelopes when no explicit count is configured.
	DefaultKDFIterations = 100_000

	// MinKDFIterations is the lowest iteration count the cipher accepts
	// for newly created envelopes.
	MinKDFIterations = 100_000

	keyLen  = 32 // 256-bit AES key
	saltLen = 32 // 256-bit KDF salt
	ivLen   = 16 // 128-bit GCM nonce

	// noteAAD binds every ciphertext to this application and purpose.
	// A blob lifted out of a note field and replayed in another context
	// fails authentication even with the right password.
	noteAAD = "memoryink:note:v1"
)

// noteCipherService is the private implementation of [NoteCipherService].
type noteCipherService struct {
	// PBKDF2 iteration count. Stored in the struct so it can be raised
	// per deployment target without touching old envelopes: decryption
	// always uses the count recorded in the envelope itself.
	iterations int
}

// NewNoteCipherService constructs a [NoteCipherService] with the given
// PBKDF2-SHA256 iteration count. Counts below [MinKDFIterations] (including
// zero) fall back to [DefaultKDFIterations].
func NewNoteCipherService(iterations int) NoteCipherService {
	if iterations < MinKDFIterations {
		iterations = DefaultKDFIterations
	}

	return &noteCipherService{iterations: iterations}
}

// Encrypt implements [NoteCipherService].
func (c *noteCipherService) Encrypt(plaintext, password string) (models.EncryptedNote, error) {
	if password == "" {
		return models.EncryptedNote{}, ErrEmptyPassword
	}

	// 1. Generate a fresh random salt
	salt := make([]byte, saltLen)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return models.EncryptedNote{}, fmt.Errorf("generate salt: %w", err)
	}

	// 2. Derive the AES key from the password
	key := pbkdf2.Key([]byte(password), salt, c.iterations, keyLen, sha256.New)

	// 3. Generate a fresh random IV
	iv := make([]byte, ivLen)
	if _, err := io.ReadFull(rand.Reader, iv); err != nil {
		return models.EncryptedNote{}, fmt.Errorf("generate iv: %w", err)
	}

	// 4. Build AES-GCM with the 16-byte nonce this format uses
	gcm, err := newGCM(key, ivLen)
	if err != nil {
		return models.EncryptedNote{}, err
	}

	// 5. Seal with the application AAD, then split off the auth tag so
	// the envelope stores ciphertext and tag as separate fields
	sealed := gcm.Seal(nil, iv, []byte(plaintext), []byte(noteAAD))
	tagAt := len(sealed) - gcm.Overhead()

	return models.EncryptedNote{
		Format:      models.EnvelopeFormat,
		KDF:         models.KDFPBKDF2SHA256,
		Iterations:  c.iterations,
		Salt:        salt,
		IV:          iv,
		Ciphertext:  sealed[:tagAt],
		AuthTag:     sealed[tagAt:],
		ContentHash: utils.ContentHashString(plaintext),
	}, nil
}

// Decrypt implements [NoteCipherService].
func (c *noteCipherService) Decrypt(envelope models.EncryptedNote, password string) (string, error) {
	if password == "" {
		return "", ErrEmptyPassword
	}

	// 1. Reject structurally incomplete envelopes before touching the KDF
	if envelope.KDF != models.KDFPBKDF2SHA256 || envelope.Iterations <= 0 {
		return "", fmt.Errorf("%w: unknown kdf %q", ErrMalformedEnvelope, envelope.KDF)
	}
	if len(envelope.Salt) == 0 || len(envelope.IV) == 0 || len(envelope.AuthTag) == 0 {
		return "", fmt.Errorf("%w: missing salt, iv or tag", ErrMalformedEnvelope)
	}

	// 2. Re-derive the key with the parameters recorded in the envelope
	key := pbkdf2.Key([]byte(password), envelope.Salt, envelope.Iterations, keyLen, sha256.New)

	// 3. Build AES-GCM sized to the envelope's IV, so envelopes written
	// with a different nonce length still open
	gcm, err := newGCM(key, len(envelope.IV))
	if err != nil {
		return "", err
	}

	// 4. Recombine ciphertext and tag, then open. An authentication error
	// here almost always means the user entered the wrong password.
	sealed := make([]byte, 0, len(envelope.Ciphertext)+len(envelope.AuthTag))
	sealed = append(sealed, envelope.Ciphertext...)
	sealed = append(sealed, envelope.AuthTag...)

	plaintext, err := gcm.Open(nil, envelope.IV, sealed, []byte(noteAAD))
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrDecryptionFailed, err)
	}

	// 5. Cross-check the recovered text against the recorded hash
	if envelope.ContentHash != "" {
		if utils.ContentHashString(string(plaintext)) != envelope.ContentHash {
			return "", ErrIntegrityMismatch
		}
	}

	return string(plaintext), nil
}

// newGCM builds an AES-256-GCM AEAD over key with the given nonce size.
func newGCM(key []byte, nonceSize int) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}

	gcm, err := cipher.NewGCMWithNonceSize(block, nonceSize)
	if err != nil {
		return nil, fmt.Errorf("create gcm: %w", err)
	}

	return gcm, nil
}
