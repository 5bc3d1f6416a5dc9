// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains shared application-layer constants used across the
// memoryink CLI and batch runner.
//
// All Msg* constants are human-readable message strings that are written
// into CLI output or log entries to describe the outcome of an operation.
// Keeping them in one place ensures consistent wording throughout the tool.
package app

const (
	// MsgUnsupportedFormat is shown when a target file is not one of the
	// supported image formats (JPEG, PNG) or its extension disagrees
	// with the actual content.
	MsgUnsupportedFormat = "unsupported image format"

	// MsgEmbedFailed is shown when a note cannot be written into the
	// image, e.g. because the file structure is damaged or the note does
	// not fit the format's metadata limits.
	MsgEmbedFailed = "failed to embed note"

	// MsgNoNoteFound is shown when an image carries no note in any of
	// the fields this tool reads.
	MsgNoNoteFound = "no note found"

	// MsgNoteIsEncrypted is shown when an encrypted note is extracted
	// without a password; the ciphertext envelope is reported instead of
	// the plaintext.
	MsgNoteIsEncrypted = "note is encrypted, supply a password to reveal it"

	// MsgDecryptionFailed is shown when decryption fails because the
	// password is wrong or the stored envelope has been tampered with.
	MsgDecryptionFailed = "decryption failed: wrong password or corrupted note"

	// MsgIntegrityMismatch is shown when decryption succeeds but the
	// recovered plaintext does not match the stored integrity hash.
	MsgIntegrityMismatch = "integrity check failed: note content was corrupted"

	// MsgPasswordRequired is shown when an operation needs a password
	// (encrypting a note, revealing an encrypted one) and none was given.
	MsgPasswordRequired = "password required"

	// MsgDestinationExists is shown when the output file already exists
	// and overwriting was not requested.
	MsgDestinationExists = "destination file already exists, use -force to overwrite"

	// MsgSourceNotFound is shown when the target image file cannot be
	// read.
	MsgSourceNotFound = "image file not found"

	// MsgNothingToScan is shown when a batch run finds no image files
	// under the given paths.
	MsgNothingToScan = "no image files to scan"

	// MsgBatchAborted is shown when a fail-fast batch run stops at the
	// first failed file.
	MsgBatchAborted = "batch run aborted on first error"
)
