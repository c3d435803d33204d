// Copyright (c) 2026 Funtush. All rights reserved.

/*
Package blob stores uploaded files and hands back their public URL.

Two implementations exist:

  - S3Uploader: any S3-compatible object store (AWS, MinIO, R2).
  - Disabled: used when no bucket is configured; every upload fails with
    SERVICE_UNAVAILABLE.
*/
package blob

import (
	"context"
	"io"

	"github.com/parthibdhar/Funtush-Server/internal/platform/apperr"
)

// Uploader persists one object and returns the URL clients can fetch it from.
type Uploader interface {
	Upload(ctx context.Context, key string, body io.Reader, size int64, contentType string) (string, error)
}

// Disabled is the [Uploader] used when blob storage is not configured.
type Disabled struct{}

// Upload always fails with SERVICE_UNAVAILABLE.
func (Disabled) Upload(context.Context, string, io.Reader, int64, string) (string, error) {
	return "", apperr.ServiceUnavailable("File uploads are not configured")
}
