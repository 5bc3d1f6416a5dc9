// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"encoding/json"
	"fmt"
)

// EnvelopeFormat is the current wire format number of [EncryptedNote].
const EnvelopeFormat = 1

// KDFPBKDF2SHA256 names the key derivation function used by envelope
// format 1. Recorded in the envelope so parameters can evolve without
// breaking old notes.
const KDFPBKDF2SHA256 = "pbkdf2-sha256"

// EncryptedNote is the envelope stored inside an image when a note is
// encrypted. It carries everything needed to decrypt later except the
// password: the KDF parameters, salt, IV, ciphertext and the GCM
// authentication tag, each independently required.
//
// The envelope is serialized as compact JSON with base64 byte fields.
// The "memoryink" discriminator makes it self-describing, so extraction
// can still recognize an encrypted payload after a foreign tool has
// stripped the encryption marker fields.
type EncryptedNote struct {
	// Format is the envelope wire format number ([EnvelopeFormat]).
	Format int `json:"memoryink"`

	// KDF names the key derivation function, e.g. [KDFPBKDF2SHA256].
	KDF string `json:"kdf"`

	// Iterations is the KDF iteration count used for this envelope.
	Iterations int `json:"iter"`

	// Salt is the random 256-bit KDF salt, unique per encryption.
	Salt []byte `json:"salt"`

	// IV is the random 128-bit GCM initialization vector, unique per
	// encryption.
	IV []byte `json:"iv"`

	// Ciphertext is the AES-256-GCM output without the auth tag.
	// Empty for an empty plaintext.
	Ciphertext []byte `json:"data"`

	// AuthTag is the 128-bit GCM authentication tag.
	AuthTag []byte `json:"tag"`

	// ContentHash is the hex SHA-256 of the plaintext, cross-checked
	// after decryption to detect silent corruption.
	ContentHash string `json:"sha256,omitempty"`
}

// Encode serializes the envelope to its compact JSON wire form.
func (e EncryptedNote) Encode() (string, error) {
	raw, err := json.Marshal(e)
	if err != nil {
		return "", fmt.Errorf("encode encrypted note envelope: %w", err)
	}

	return string(raw), nil
}

// ParseEncryptedNote attempts to read s as an [EncryptedNote] envelope.
//
// Returns ok == false for anything that is not a complete format-1
// envelope: plain note text, foreign JSON, or an envelope missing salt,
// IV or auth tag. Ciphertext alone may be empty, because encrypting an
// empty note produces no ciphertext bytes.
func ParseEncryptedNote(s string) (EncryptedNote, bool) {
	var env EncryptedNote
	if err := json.Unmarshal([]byte(s), &env); err != nil {
		return EncryptedNote{}, false
	}

	if env.Format != EnvelopeFormat || env.KDF == "" || env.Iterations <= 0 {
		return EncryptedNote{}, false
	}
	if len(env.Salt) == 0 || len(env.IV) == 0 || len(env.AuthTag) == 0 {
		return EncryptedNote{}, false
	}

	return env, true
}
