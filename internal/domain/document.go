package domain

import "context"

// DocumentStore uploads user documents to the platform's storage service.
type DocumentStore interface {
	Upload(ctx context.Context, accessToken, filename, contentType string, data []byte) (*DocumentRef, error)
	Delete(ctx context.Context, accessToken, fileURL string) error
}
