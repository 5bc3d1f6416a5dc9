package validators

import (
	"context"
	"unicode/utf8"

	"github.com/eyad6789/images-with-memory/models"
)

// Field name constants used to specify which fields should be validated.
// These constants are passed to Validate or internal validation methods
// to restrict validation to a subset of fields (field-level scoping).
const (
	// FieldSource targets the image source of a request: either a file
	// path or an in-memory byte slice, never both.
	FieldSource = "source"

	// FieldText targets the note text of an embed request.
	FieldText = "text"

	// FieldPassword targets the encryption password of an embed request.
	FieldPassword = "password"
)

// maxNoteLength caps the note text accepted by the validator, in bytes.
// The JPEG codec enforces its own tighter segment-level limit; this bound
// protects the PNG path from unreasonably large chunks.
const maxNoteLength = 1 << 20

// RequestValidator implements the Validator interface for all note-service
// request models: EmbedRequest, ExtractRequest, RevealRequest and
// VerifyRequest.
//
// It supports both value and pointer receivers for every model type
// and allows optional field-level scoping via variadic field name arguments.
type RequestValidator struct {
}

// NewRequestValidator constructs a new RequestValidator
// and returns it as the Validator interface.
func NewRequestValidator() Validator {
	return &RequestValidator{}
}

// Validate dispatches validation to the appropriate type-specific method
// based on the dynamic type of obj. Both value and pointer forms of each
// supported model are accepted.
//
// Supported types:
//   - models.EmbedRequest / *models.EmbedRequest
//   - models.ExtractRequest / *models.ExtractRequest
//   - models.RevealRequest / *models.RevealRequest
//   - models.VerifyRequest / *models.VerifyRequest
//
// Returns ErrUnsupportedType if obj does not match any known model.
// Optional fields restrict validation to the named subset; when omitted,
// a sensible default set of fields is validated.
func (v *RequestValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.EmbedRequest:
		return v.validateEmbedRequest(ctx, value, fields...)
	case *models.EmbedRequest:
		return v.validateEmbedRequest(ctx, *value, fields...)

	case models.ExtractRequest:
		return v.validateExtractRequest(ctx, value, fields...)
	case *models.ExtractRequest:
		return v.validateExtractRequest(ctx, *value, fields...)

	case models.RevealRequest:
		return v.validateRevealRequest(ctx, value, fields...)
	case *models.RevealRequest:
		return v.validateRevealRequest(ctx, *value, fields...)

	case models.VerifyRequest:
		return v.validateVerifyRequest(ctx, value, fields...)
	case *models.VerifyRequest:
		return v.validateVerifyRequest(ctx, *value, fields...)

	default:
		return ErrUnsupportedType
	}
}

// sourceError checks the path-or-bytes source rule shared by every request:
// exactly one of the two must be provided.
func sourceError(path string, data []byte) error {
	if path == "" && len(data) == 0 {
		return ErrNoSource
	}
	if path != "" && len(data) > 0 {
		return ErrAmbiguousSource
	}
	return nil
}

// validateEmbedRequest validates a single EmbedRequest.
//
// Default validated fields (when none specified): Source, Text, Password.
//
// The note text must be valid UTF-8 and fit within maxNoteLength; an empty
// note is valid. The password check only applies when encryption is
// requested.
//
// Returns the first encountered validation error or nil.
func (v *RequestValidator) validateEmbedRequest(ctx context.Context, request models.EmbedRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldSource, FieldText, FieldPassword}
	}

	for _, f := range fields {
		switch f {
		case FieldSource:
			if err := sourceError(request.Path, request.Data); err != nil {
				return err
			}
		case FieldText:
			if !utf8.ValidString(request.Text) {
				return ErrTextNotUTF8
			}
			if len(request.Text) > maxNoteLength {
				return ErrNoteTooLong
			}
		case FieldPassword:
			if request.Encrypt && request.Password == "" {
				return ErrEmptyPassword
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

// validateExtractRequest validates a single ExtractRequest.
//
// Default validated fields: Source.
func (v *RequestValidator) validateExtractRequest(ctx context.Context, request models.ExtractRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldSource}
	}

	for _, f := range fields {
		switch f {
		case FieldSource:
			if err := sourceError(request.Path, request.Data); err != nil {
				return err
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

// validateRevealRequest validates a single RevealRequest.
//
// Default validated fields: Source.
//
// The password is intentionally not required here: whether the stored note
// is encrypted is only known after extraction, so the missing-password case
// is a service-level condition, not a request-shape error.
func (v *RequestValidator) validateRevealRequest(ctx context.Context, request models.RevealRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldSource}
	}

	for _, f := range fields {
		switch f {
		case FieldSource:
			if err := sourceError(request.Path, request.Data); err != nil {
				return err
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

// validateVerifyRequest validates a single VerifyRequest.
//
// Default validated fields: Source.
func (v *RequestValidator) validateVerifyRequest(ctx context.Context, request models.VerifyRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldSource}
	}

	for _, f := range fields {
		switch f {
		case FieldSource:
			if err := sourceError(request.Path, request.Data); err != nil {
				return err
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}
