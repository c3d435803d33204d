// Copyright (c) 2026 Funtush. All rights reserved.

/*
Package upload accepts poster and avatar files from signed-in users and
stores them in blob storage under a collision-free name.
*/
package upload

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/parthibdhar/Funtush-Server/internal/platform/apperr"
	"github.com/parthibdhar/Funtush-Server/internal/platform/blob"
	"github.com/parthibdhar/Funtush-Server/internal/platform/metrics"
	"github.com/parthibdhar/Funtush-Server/pkg/uuid"
)

const defaultContentType = "application/octet-stream"

// File is a stored upload.
type File struct {
	FileName string `json:"fileName"`
	FileURL  string `json:"fileUrl"`
}

// Service names and stores uploaded files.
type Service struct {
	uploader blob.Uploader
	metrics  *metrics.Registry
	logger   *slog.Logger
}

// NewService constructs a new upload [Service].
func NewService(uploader blob.Uploader, registry *metrics.Registry, logger *slog.Logger) *Service {
	return &Service{uploader: uploader, metrics: registry, logger: logger}
}

/*
Store saves body under a fresh name that keeps the original extension.

Parameters:
  - ctx: context.Context
  - originalName: string (client file name, only its extension is kept)
  - body: io.Reader
  - size: int64
  - contentType: string

Returns:
  - *File: the stored name and its public URL
  - error: SERVICE_UNAVAILABLE when storage is off, STORE_FAILURE otherwise
*/
func (service *Service) Store(ctx context.Context, originalName string, body io.Reader, size int64, contentType string) (*File, error) {
	fileName := uuid.New() + strings.ToLower(filepath.Ext(filepath.Base(originalName)))
	if contentType == "" {
		contentType = defaultContentType
	}

	url, err := service.uploader.Upload(ctx, fileName, body, size, contentType)
	if err != nil {
		if apperr.IsAppError(err) {
			return nil, err
		}
		return nil, apperr.StoreFailure(fmt.Errorf("upload_service_store_failed: %w", err))
	}

	service.metrics.FilesUploaded.Inc()
	service.logger.InfoContext(ctx, "file_uploaded",
		slog.String("file_name", fileName),
		slog.Int64("size", size),
	)

	return &File{FileName: fileName, FileURL: url}, nil
}
