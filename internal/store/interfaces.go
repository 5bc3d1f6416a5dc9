package store

import "context"

//go:generate mockgen -source=interfaces.go -destination=../mock/image_file_store_mock.go -package=mock

// ImageFileStore is the local-filesystem source and sink for image bytes.
type ImageFileStore interface {
	Read(ctx context.Context, path string) ([]byte, error)
	Write(ctx context.Context, path string, data []byte, overwrite bool) error
}
