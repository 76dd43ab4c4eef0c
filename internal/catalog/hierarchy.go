package catalog

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/voralis/catalogd/internal/apperrors"
	"github.com/voralis/catalogd/internal/database"
	"github.com/voralis/catalogd/internal/events"
	"github.com/voralis/catalogd/internal/repository"
)

// --- Series ---

// ListSeries returns series, optionally filtered by a case-insensitive
// substring search on name.
func (s *Service) ListSeries(ctx context.Context, search string) ([]database.Series, error) {
	series, err := s.series.Find(ctx, search)
	if err != nil {
		return nil, mapErr(err, "list series", "series", search)
	}
	return series, nil
}

// GetSeries returns one series by name.
func (s *Service) GetSeries(ctx context.Context, name string) (*database.Series, error) {
	series, err := s.series.FindOne(ctx, name)
	if err != nil {
		return nil, mapErr(err, "get series", "series", name)
	}
	return series, nil
}

// CreateSeries inserts a new series.
func (s *Service) CreateSeries(ctx context.Context, series *database.Series) (*database.Series, error) {
	if err := s.series.Insert(ctx, series); err != nil {
		return nil, mapErr(err, "create series", "series", series.Name)
	}
	s.publish(events.TypeSeriesCreated, map[string]interface{}{"name": series.Name})
	return series, nil
}

// UpdateSeries replaces the series with the given name. Full-replace
// semantics: fields the caller omits are lost, except added_at.
func (s *Service) UpdateSeries(ctx context.Context, name string, doc *database.Series) (*database.Series, error) {
	updated, err := s.series.Update(ctx, name, doc)
	if err != nil {
		return nil, mapErr(err, "update series", "series", name)
	}
	s.publish(events.TypeSeriesUpdated, map[string]interface{}{"name": name})
	return updated, nil
}

// --- Seasons ---

// ListSeasons returns a series' seasons ordered by season number. The
// series itself must exist.
func (s *Service) ListSeasons(ctx context.Context, seriesName string) ([]database.Season, error) {
	if _, err := s.series.FindOne(ctx, seriesName); err != nil {
		return nil, mapErr(err, "list seasons", "series", seriesName)
	}
	seasons, err := s.seasons.Find(ctx, seriesName)
	if err != nil {
		return nil, mapErr(err, "list seasons", "season", seriesName)
	}
	return seasons, nil
}

// GetSeason returns one season by natural key.
func (s *Service) GetSeason(ctx context.Context, seriesName string, seasonNumber int) (*database.Season, error) {
	season, err := s.seasons.FindOne(ctx, seriesName, seasonNumber)
	if err != nil {
		return nil, mapErr(err, "get season", "season", seasonKey(seriesName, seasonNumber))
	}
	return season, nil
}

// CreateSeason inserts a new season. In strict mode the parent series must
// exist; in permissive mode orphaned seasons are allowed (they become
// reachable once a series with the matching name appears).
func (s *Service) CreateSeason(ctx context.Context, season *database.Season) (*database.Season, error) {
	if s.cfg.StrictRefs {
		if _, err := s.series.FindOne(ctx, season.SeriesName); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, apperrors.NewValidationError(
					fmt.Sprintf("series %q does not exist", season.SeriesName), "series_name")
			}
			return nil, mapErr(err, "create season", "series", season.SeriesName)
		}
	}
	if err := s.seasons.Insert(ctx, season); err != nil {
		return nil, mapErr(err, "create season", "season", seasonKey(season.SeriesName, season.SeasonNumber))
	}
	s.publish(events.TypeSeasonCreated, map[string]interface{}{
		"series": season.SeriesName, "season": season.SeasonNumber,
	})
	return season, nil
}

// UpdateSeason replaces the season with the given natural key.
func (s *Service) UpdateSeason(ctx context.Context, seriesName string, seasonNumber int, doc *database.Season) (*database.Season, error) {
	updated, err := s.seasons.Update(ctx, seriesName, seasonNumber, doc)
	if err != nil {
		return nil, mapErr(err, "update season", "season", seasonKey(seriesName, seasonNumber))
	}
	s.publish(events.TypeSeasonUpdated, map[string]interface{}{
		"series": seriesName, "season": seasonNumber,
	})
	return updated, nil
}

// --- Episodes ---

// ListEpisodes returns episodes matching filter, ordered by (season,
// episode) ascending.
func (s *Service) ListEpisodes(ctx context.Context, filter repository.EpisodeFilter) ([]database.Episode, error) {
	episodes, err := s.episodes.Find(ctx, filter)
	if err != nil {
		return nil, mapErr(err, "list episodes", "episode", filter.Series)
	}
	return episodes, nil
}

// GetEpisode returns one episode by natural key.
func (s *Service) GetEpisode(ctx context.Context, seriesName string, seasonNumber, episodeNumber int) (*database.Episode, error) {
	episode, err := s.episodes.FindOne(ctx, seriesName, seasonNumber, episodeNumber)
	if err != nil {
		return nil, mapErr(err, "get episode", "episode", episodeKey(seriesName, seasonNumber, episodeNumber))
	}
	return episode, nil
}

// CreateEpisode inserts a new episode. In strict mode the owning season must
// exist.
func (s *Service) CreateEpisode(ctx context.Context, episode *database.Episode) (*database.Episode, error) {
	if err := s.checkSeasonRef(ctx, episode.SeriesName, episode.SeasonNumber); err != nil {
		return nil, err
	}
	if err := s.episodes.Insert(ctx, episode); err != nil {
		return nil, mapErr(err, "create episode", "episode",
			episodeKey(episode.SeriesName, episode.SeasonNumber, episode.EpisodeNumber))
	}
	s.publish(events.TypeEpisodeCreated, map[string]interface{}{
		"series": episode.SeriesName, "season": episode.SeasonNumber, "episode": episode.EpisodeNumber,
	})
	return episode, nil
}

// BulkCreateEpisodes inserts a batch of episodes for one season. The batch
// is atomic: one invalid entry rejects all of them.
func (s *Service) BulkCreateEpisodes(ctx context.Context, seriesName string, seasonNumber int, batch []database.Episode) ([]database.Episode, error) {
	if len(batch) == 0 {
		return nil, apperrors.NewValidationError("episode batch is empty", "episodes")
	}
	if err := s.checkSeasonRef(ctx, seriesName, seasonNumber); err != nil {
		return nil, err
	}
	inserted, err := s.episodes.InsertBulk(ctx, seriesName, seasonNumber, batch)
	if err != nil {
		return nil, mapErr(err, "bulk create episodes", "episode", seasonKey(seriesName, seasonNumber))
	}
	s.publish(events.TypeEpisodeCreated, map[string]interface{}{
		"series": seriesName, "season": seasonNumber, "count": len(inserted),
	})
	return inserted, nil
}

// UpdateEpisode replaces the episode with the given natural key.
func (s *Service) UpdateEpisode(ctx context.Context, seriesName string, seasonNumber, episodeNumber int, doc *database.Episode) (*database.Episode, error) {
	updated, err := s.episodes.Update(ctx, seriesName, seasonNumber, episodeNumber, doc)
	if err != nil {
		return nil, mapErr(err, "update episode", "episode", episodeKey(seriesName, seasonNumber, episodeNumber))
	}
	s.publish(events.TypeEpisodeUpdated, map[string]interface{}{
		"series": seriesName, "season": seasonNumber, "episode": episodeNumber,
	})
	return updated, nil
}

// DeleteEpisode removes one episode. Episodes have no children, so there is
// no cascade.
func (s *Service) DeleteEpisode(ctx context.Context, seriesName string, seasonNumber, episodeNumber int) (*database.Episode, error) {
	deleted, err := s.episodes.Delete(ctx, seriesName, seasonNumber, episodeNumber)
	if err != nil {
		return nil, mapErr(err, "delete episode", "episode", episodeKey(seriesName, seasonNumber, episodeNumber))
	}
	s.publish(events.TypeEpisodeDeleted, map[string]interface{}{
		"series": seriesName, "season": seasonNumber, "episode": episodeNumber,
	})
	return deleted, nil
}

func (s *Service) checkSeasonRef(ctx context.Context, seriesName string, seasonNumber int) error {
	if !s.cfg.StrictRefs {
		return nil
	}
	if _, err := s.seasons.FindOne(ctx, seriesName, seasonNumber); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.NewValidationError(
				fmt.Sprintf("season %d of series %q does not exist", seasonNumber, seriesName),
				"series_name", "season_number")
		}
		return mapErr(err, "check season", "season", seasonKey(seriesName, seasonNumber))
	}
	return nil
}

func seasonKey(seriesName string, seasonNumber int) string {
	return seriesName + "/" + strconv.Itoa(seasonNumber)
}

func episodeKey(seriesName string, seasonNumber, episodeNumber int) string {
	return seriesName + "/" + strconv.Itoa(seasonNumber) + "/" + strconv.Itoa(episodeNumber)
}
