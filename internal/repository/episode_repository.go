package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/voralis/catalogd/internal/apperrors"
	"github.com/voralis/catalogd/internal/database"
)

// EpisodeFilter narrows episode queries. Series and Season are exact-match
// filters; Search is a case-insensitive substring match on title.
type EpisodeFilter struct {
	Series string
	Season *int
	Search string
}

// SeasonEpisodeCount is one row of the episodes-per-season aggregation.
type SeasonEpisodeCount struct {
	SeasonNumber int   `json:"season"`
	Episodes     int64 `json:"episodes"`
}

// EpisodeRepository provides typed access to the episode collection, keyed
// by (series name, season number, episode number).
type EpisodeRepository struct {
	db *gorm.DB
}

func NewEpisodeRepository(db *gorm.DB) *EpisodeRepository {
	return &EpisodeRepository{db: db}
}

// Find returns episodes matching filter, ordered by (season_number,
// episode_number) ascending.
func (r *EpisodeRepository) Find(ctx context.Context, filter EpisodeFilter) ([]database.Episode, error) {
	var episodes []database.Episode
	query := r.db.WithContext(ctx)
	if filter.Series != "" {
		query = query.Where("series_name = ?", filter.Series)
	}
	if filter.Season != nil {
		query = query.Where("season_number = ?", *filter.Season)
	}
	if filter.Search != "" {
		query = query.Where("LOWER(title) LIKE ?"+likeClause, likePattern(filter.Search))
	}
	err := query.Order("season_number asc, episode_number asc").Find(&episodes).Error
	if err != nil {
		return nil, err
	}
	return episodes, nil
}

// FindOne returns the episode with the given natural key or ErrNotFound.
func (r *EpisodeRepository) FindOne(ctx context.Context, seriesName string, seasonNumber, episodeNumber int) (*database.Episode, error) {
	var episode database.Episode
	err := r.db.WithContext(ctx).
		Where("series_name = ? AND season_number = ? AND episode_number = ?",
			seriesName, seasonNumber, episodeNumber).
		First(&episode).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &episode, nil
}

// Insert persists a new episode.
func (r *EpisodeRepository) Insert(ctx context.Context, episode *database.Episode) error {
	if err := validateEpisode(episode); err != nil {
		return err
	}
	episode.ID = uuid.NewString()
	return r.db.WithContext(ctx).Create(episode).Error
}

// InsertBulk persists a batch of episodes for one season atomically: every
// entry is validated up front and a single invalid entry rejects the whole
// batch with nothing persisted. The season assignment in the arguments wins
// over whatever the entries carry.
func (r *EpisodeRepository) InsertBulk(ctx context.Context, seriesName string, seasonNumber int, episodes []database.Episode) ([]database.Episode, error) {
	for i := range episodes {
		episodes[i].SeriesName = seriesName
		episodes[i].SeasonNumber = seasonNumber
		if err := validateEpisode(&episodes[i]); err != nil {
			var appErr *apperrors.Error
			if errors.As(err, &appErr) {
				appErr.Message = fmt.Sprintf("episode %d of batch: %s", i, appErr.Message)
			}
			return nil, err
		}
		episodes[i].ID = uuid.NewString()
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&episodes).Error
	})
	if err != nil {
		return nil, err
	}
	return episodes, nil
}

// Update replaces the stored episode with doc. The natural key comes from
// the arguments, not the body.
func (r *EpisodeRepository) Update(ctx context.Context, seriesName string, seasonNumber, episodeNumber int, doc *database.Episode) (*database.Episode, error) {
	existing, err := r.FindOne(ctx, seriesName, seasonNumber, episodeNumber)
	if err != nil {
		return nil, err
	}
	doc.SeriesName = seriesName
	doc.SeasonNumber = seasonNumber
	doc.EpisodeNumber = episodeNumber
	if err := validateEpisode(doc); err != nil {
		return nil, err
	}
	doc.ID = existing.ID
	doc.CreatedAt = existing.CreatedAt
	if err := r.db.WithContext(ctx).Save(doc).Error; err != nil {
		return nil, err
	}
	return doc, nil
}

// Delete removes the episode with the given natural key, returning it, or
// ErrNotFound.
func (r *EpisodeRepository) Delete(ctx context.Context, seriesName string, seasonNumber, episodeNumber int) (*database.Episode, error) {
	episode, err := r.FindOne(ctx, seriesName, seasonNumber, episodeNumber)
	if err != nil {
		return nil, err
	}
	err = r.db.WithContext(ctx).
		Delete(&database.Episode{}, "series_name = ? AND season_number = ? AND episode_number = ?",
			seriesName, seasonNumber, episodeNumber).Error
	if err != nil {
		return nil, err
	}
	return episode, nil
}

// DeleteBySeries removes every episode of a series. Used by the cascade
// engine.
func (r *EpisodeRepository) DeleteBySeries(ctx context.Context, seriesName string) (int64, error) {
	result := r.db.WithContext(ctx).Delete(&database.Episode{}, "series_name = ?", seriesName)
	return result.RowsAffected, result.Error
}

// DeleteBySeason removes every episode of one season. Used by the cascade
// engine.
func (r *EpisodeRepository) DeleteBySeason(ctx context.Context, seriesName string, seasonNumber int) (int64, error) {
	result := r.db.WithContext(ctx).
		Delete(&database.Episode{}, "series_name = ? AND season_number = ?", seriesName, seasonNumber)
	return result.RowsAffected, result.Error
}

// Count returns the total number of episodes across all series.
func (r *EpisodeRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&database.Episode{}).Count(&count).Error
	return count, err
}

// CountBySeries returns the number of episodes a series has.
func (r *EpisodeRepository) CountBySeries(ctx context.Context, seriesName string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&database.Episode{}).
		Where("series_name = ?", seriesName).
		Count(&count).Error
	return count, err
}

// CountPerSeason groups a series' episodes by season number, ordered by
// season ascending.
func (r *EpisodeRepository) CountPerSeason(ctx context.Context, seriesName string) ([]SeasonEpisodeCount, error) {
	var counts []SeasonEpisodeCount
	err := r.db.WithContext(ctx).Model(&database.Episode{}).
		Select("season_number, count(*) as episodes").
		Where("series_name = ?", seriesName).
		Group("season_number").
		Order("season_number asc").
		Scan(&counts).Error
	if err != nil {
		return nil, err
	}
	return counts, nil
}

func validateEpisode(episode *database.Episode) error {
	var missing []string
	if episode.SeriesName == "" {
		missing = append(missing, "series_name")
	}
	if episode.SeasonNumber <= 0 {
		missing = append(missing, "season_number")
	}
	if episode.EpisodeNumber <= 0 {
		missing = append(missing, "episode_number")
	}
	if episode.Title == "" {
		missing = append(missing, "title")
	}
	if episode.StreamingURL == "" {
		missing = append(missing, "streaming_url")
	}
	if len(missing) > 0 {
		return apperrors.NewValidationError("episode is missing required fields", missing...)
	}
	return nil
}
