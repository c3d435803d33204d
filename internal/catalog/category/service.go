// Copyright (c) 2026 Funtush. All rights reserved.

package category

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/parthibdhar/Funtush-Server/internal/catalog/seed"
	"github.com/parthibdhar/Funtush-Server/internal/platform/apperr"
	"github.com/parthibdhar/Funtush-Server/internal/platform/dberr"
	"github.com/parthibdhar/Funtush-Server/internal/platform/metrics"
	"github.com/parthibdhar/Funtush-Server/pkg/slice"
	"github.com/parthibdhar/Funtush-Server/pkg/uuid"
)

// Service manages the category list.
type Service struct {
	repo    Repository
	metrics *metrics.Registry
	logger  *slog.Logger
	now     func() time.Time
}

// NewService constructs a new [Service].
func NewService(repo Repository, registry *metrics.Registry, logger *slog.Logger) *Service {
	return &Service{
		repo:    repo,
		metrics: registry,
		logger:  logger,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// ListCategories returns every category ordered by title.
func (service *Service) ListCategories(ctx context.Context) ([]*Category, error) {
	return service.repo.List(ctx)
}

/*
CreateCategory stores a new category.

Returns:
  - *Category: the stored category
  - error: VALIDATION_ERROR, or ALREADY_EXISTS when the title is taken
*/
func (service *Service) CreateCategory(ctx context.Context, title string) (*Category, error) {
	title = normalizeTitle(title)
	if err := validateTitle(title); err != nil {
		return nil, err
	}

	now := service.now()
	category := &Category{ID: uuid.New(), Title: title, CreatedAt: now, UpdatedAt: now}

	if err := service.repo.Create(ctx, category); err != nil {
		return nil, err
	}

	service.logger.InfoContext(ctx, "category_created",
		slog.String("category_id", category.ID),
		slog.String("title", category.Title),
	)
	return category, nil
}

// UpdateCategory renames a category.
func (service *Service) UpdateCategory(ctx context.Context, id, title string) (*Category, error) {
	title = normalizeTitle(title)
	if err := validateTitle(title); err != nil {
		return nil, err
	}

	category, err := service.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	category.Title = title
	category.UpdatedAt = service.now()

	if err := service.repo.Update(ctx, category); err != nil {
		return nil, err
	}

	service.logger.InfoContext(ctx, "category_updated", slog.String("category_id", id))
	return category, nil
}

// DeleteCategory removes a category. Movies keep their category title.
func (service *Service) DeleteCategory(ctx context.Context, id string) error {
	if err := service.repo.Delete(ctx, id); err != nil {
		return err
	}

	service.logger.InfoContext(ctx, "category_deleted", slog.String("category_id", id))
	return nil
}

/*
ImportCategories replaces the whole category list.

Returns:
  - []*Category: the imported categories
  - error: VALIDATION_ERROR, ALREADY_EXISTS for repeated titles, REIMPORT_REQUIRED
*/
func (service *Service) ImportCategories(ctx context.Context, drafts []Draft) ([]*Category, error) {
	now := service.now()

	categories := make([]*Category, 0, len(drafts))
	for index, draft := range drafts {
		title := normalizeTitle(draft.Title)
		if err := validateTitle(title); err != nil {
			return nil, importEntryError(index, err)
		}
		categories = append(categories, &Category{ID: uuid.New(), Title: title, CreatedAt: now, UpdatedAt: now})
	}

	if err := service.repo.ReplaceAll(ctx, categories); err != nil {
		service.metrics.CatalogImports.WithLabelValues("category", "failure").Inc()
		if errors.Is(err, dberr.ErrPartialReplace) {
			return nil, apperr.ReimportRequired("Category", err)
		}
		return nil, err
	}

	service.metrics.CatalogImports.WithLabelValues("category", "success").Inc()
	service.logger.InfoContext(ctx, "categories_imported", slog.Int("count", len(categories)))

	return categories, nil
}

// ImportSeed replaces the list with the embedded starter categories.
func (service *Service) ImportSeed(ctx context.Context) ([]*Category, error) {
	var drafts []Draft
	if err := json.Unmarshal(seed.Categories, &drafts); err != nil {
		return nil, apperr.Internal(fmt.Errorf("category_seed_decode_failed: %w", err))
	}
	return service.ImportCategories(ctx, drafts)
}

// importEntryError prefixes validation details with the failing entry index.
func importEntryError(index int, err error) error {
	appError := apperr.As(err)
	if appError == nil || appError.Code != apperr.CodeValidation {
		return err
	}

	details := slice.Map(appError.Details, func(detail apperr.FieldError) apperr.FieldError {
		return apperr.FieldError{
			Field:   fmt.Sprintf("[%d].%s", index, detail.Field),
			Message: detail.Message,
		}
	})
	return apperr.ValidationError(appError.Message, details...)
}
