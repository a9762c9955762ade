// Package media is the object-storage collaborator producing durable
// URLs for uploaded binary assets.
package media

import (
	"context"
	"errors"
)

// ErrUpload wraps any gateway I/O or quota failure.
var ErrUpload = errors.New("media upload failed")

type Uploader interface {
	// Upload stores data under folder and returns a durable public URL.
	Upload(ctx context.Context, data []byte, contentType string, folder string) (string, error)
}
