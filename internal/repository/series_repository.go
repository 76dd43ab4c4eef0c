package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/voralis/catalogd/internal/apperrors"
	"github.com/voralis/catalogd/internal/database"
)

// SeriesRepository provides typed access to the series collection, keyed by
// series name.
type SeriesRepository struct {
	db *gorm.DB
}

func NewSeriesRepository(db *gorm.DB) *SeriesRepository {
	return &SeriesRepository{db: db}
}

// Find returns series matching the optional case-insensitive substring
// search on name, in store order.
func (r *SeriesRepository) Find(ctx context.Context, search string) ([]database.Series, error) {
	var series []database.Series
	query := r.db.WithContext(ctx)
	if search != "" {
		query = query.Where("LOWER(name) LIKE ?"+likeClause, likePattern(search))
	}
	if err := query.Find(&series).Error; err != nil {
		return nil, err
	}
	return series, nil
}

// FindOne returns the series with the given name or ErrNotFound.
func (r *SeriesRepository) FindOne(ctx context.Context, name string) (*database.Series, error) {
	var series database.Series
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&series).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &series, nil
}

// Insert persists a new series. The type tag is always "series" regardless
// of what the caller supplied.
func (r *SeriesRepository) Insert(ctx context.Context, series *database.Series) error {
	if err := validateSeries(series); err != nil {
		return err
	}
	series.ID = uuid.NewString()
	series.Type = "series"
	if series.AddedAt.IsZero() {
		series.AddedAt = time.Now().UTC()
	}
	return r.db.WithContext(ctx).Create(series).Error
}

// Update replaces the stored series with doc, keyed by name. The natural key
// itself is taken from the route, not the body, so a series cannot be
// renamed out from under its children here. id and added_at are preserved.
func (r *SeriesRepository) Update(ctx context.Context, name string, doc *database.Series) (*database.Series, error) {
	existing, err := r.FindOne(ctx, name)
	if err != nil {
		return nil, err
	}
	doc.Name = name
	if err := validateSeries(doc); err != nil {
		return nil, err
	}
	doc.ID = existing.ID
	doc.Type = "series"
	doc.AddedAt = existing.AddedAt
	doc.CreatedAt = existing.CreatedAt
	if err := r.db.WithContext(ctx).Save(doc).Error; err != nil {
		return nil, err
	}
	return doc, nil
}

// Delete removes the series row only; cascading to children is the catalog
// engine's job. Returns the removed row or ErrNotFound.
func (r *SeriesRepository) Delete(ctx context.Context, name string) (*database.Series, error) {
	series, err := r.FindOne(ctx, name)
	if err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Delete(&database.Series{}, "name = ?", name).Error; err != nil {
		return nil, err
	}
	return series, nil
}

// Count returns the total number of series.
func (r *SeriesRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&database.Series{}).Count(&count).Error
	return count, err
}

func validateSeries(series *database.Series) error {
	var missing []string
	if series.Name == "" {
		missing = append(missing, "name")
	}
	if series.Thumbnail == "" {
		missing = append(missing, "thumbnail")
	}
	if len(missing) > 0 {
		return apperrors.NewValidationError("series is missing required fields", missing...)
	}
	return nil
}
