package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/voralis/catalogd/internal/apperrors"
	"github.com/voralis/catalogd/internal/database"
)

// SeasonRepository provides typed access to the season collection, keyed by
// (series name, season number).
type SeasonRepository struct {
	db *gorm.DB
}

func NewSeasonRepository(db *gorm.DB) *SeasonRepository {
	return &SeasonRepository{db: db}
}

// Find returns all seasons of a series ordered by season number ascending.
func (r *SeasonRepository) Find(ctx context.Context, seriesName string) ([]database.Season, error) {
	var seasons []database.Season
	err := r.db.WithContext(ctx).
		Where("series_name = ?", seriesName).
		Order("season_number asc").
		Find(&seasons).Error
	if err != nil {
		return nil, err
	}
	return seasons, nil
}

// FindOne returns the season with the given natural key or ErrNotFound.
func (r *SeasonRepository) FindOne(ctx context.Context, seriesName string, seasonNumber int) (*database.Season, error) {
	var season database.Season
	err := r.db.WithContext(ctx).
		Where("series_name = ? AND season_number = ?", seriesName, seasonNumber).
		First(&season).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &season, nil
}

// Insert persists a new season.
func (r *SeasonRepository) Insert(ctx context.Context, season *database.Season) error {
	if err := validateSeason(season); err != nil {
		return err
	}
	season.ID = uuid.NewString()
	return r.db.WithContext(ctx).Create(season).Error
}

// Update replaces the stored season with doc. The natural key comes from the
// arguments, not the body.
func (r *SeasonRepository) Update(ctx context.Context, seriesName string, seasonNumber int, doc *database.Season) (*database.Season, error) {
	existing, err := r.FindOne(ctx, seriesName, seasonNumber)
	if err != nil {
		return nil, err
	}
	doc.SeriesName = seriesName
	doc.SeasonNumber = seasonNumber
	if err := validateSeason(doc); err != nil {
		return nil, err
	}
	doc.ID = existing.ID
	doc.CreatedAt = existing.CreatedAt
	if err := r.db.WithContext(ctx).Save(doc).Error; err != nil {
		return nil, err
	}
	return doc, nil
}

// Delete removes the season row only, returning it, or ErrNotFound.
func (r *SeasonRepository) Delete(ctx context.Context, seriesName string, seasonNumber int) (*database.Season, error) {
	season, err := r.FindOne(ctx, seriesName, seasonNumber)
	if err != nil {
		return nil, err
	}
	err = r.db.WithContext(ctx).
		Delete(&database.Season{}, "series_name = ? AND season_number = ?", seriesName, seasonNumber).Error
	if err != nil {
		return nil, err
	}
	return season, nil
}

// DeleteBySeries removes every season of a series and reports how many rows
// went away. Used by the cascade engine.
func (r *SeasonRepository) DeleteBySeries(ctx context.Context, seriesName string) (int64, error) {
	result := r.db.WithContext(ctx).Delete(&database.Season{}, "series_name = ?", seriesName)
	return result.RowsAffected, result.Error
}

// CountBySeries returns the number of seasons a series has.
func (r *SeasonRepository) CountBySeries(ctx context.Context, seriesName string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&database.Season{}).
		Where("series_name = ?", seriesName).
		Count(&count).Error
	return count, err
}

func validateSeason(season *database.Season) error {
	var missing []string
	if season.SeriesName == "" {
		missing = append(missing, "series_name")
	}
	if season.SeasonNumber <= 0 {
		missing = append(missing, "season_number")
	}
	if season.Title == "" {
		missing = append(missing, "title")
	}
	if len(missing) > 0 {
		return apperrors.NewValidationError("season is missing required fields", missing...)
	}
	return nil
}
