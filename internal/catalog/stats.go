package catalog

import (
	"context"

	"github.com/voralis/catalogd/internal/repository"
)

// SeriesStats summarizes one series' hierarchy.
type SeriesStats struct {
	SeriesName        string                          `json:"series_name"`
	TotalSeasons      int64                           `json:"total_seasons"`
	TotalEpisodes     int64                           `json:"total_episodes"`
	EpisodesPerSeason []repository.SeasonEpisodeCount `json:"episodes_per_season"`
}

// GlobalStats summarizes the whole catalog. Episodes are counted from the
// flat episode collection.
type GlobalStats struct {
	Movies   int64 `json:"movies"`
	Series   int64 `json:"series"`
	Episodes int64 `json:"episodes"`
	Total    int64 `json:"total"`
}

// SeriesStats counts a series' seasons and episodes and groups episode
// counts by season, ordered by season ascending. The series must exist.
func (s *Service) SeriesStats(ctx context.Context, name string) (*SeriesStats, error) {
	if _, err := s.series.FindOne(ctx, name); err != nil {
		return nil, mapErr(err, "series stats", "series", name)
	}

	seasons, err := s.seasons.CountBySeries(ctx, name)
	if err != nil {
		return nil, mapErr(err, "series stats", "season", name)
	}
	episodes, err := s.episodes.CountBySeries(ctx, name)
	if err != nil {
		return nil, mapErr(err, "series stats", "episode", name)
	}
	perSeason, err := s.episodes.CountPerSeason(ctx, name)
	if err != nil {
		return nil, mapErr(err, "series stats", "episode", name)
	}
	if perSeason == nil {
		perSeason = []repository.SeasonEpisodeCount{}
	}

	return &SeriesStats{
		SeriesName:        name,
		TotalSeasons:      seasons,
		TotalEpisodes:     episodes,
		EpisodesPerSeason: perSeason,
	}, nil
}

// GlobalStats counts movies, series and episodes across the catalog.
func (s *Service) GlobalStats(ctx context.Context) (*GlobalStats, error) {
	movies, err := s.movies.Count(ctx)
	if err != nil {
		return nil, mapErr(err, "global stats", "movie", "")
	}
	series, err := s.series.Count(ctx)
	if err != nil {
		return nil, mapErr(err, "global stats", "series", "")
	}
	episodes, err := s.episodes.Count(ctx)
	if err != nil {
		return nil, mapErr(err, "global stats", "episode", "")
	}

	return &GlobalStats{
		Movies:   movies,
		Series:   series,
		Episodes: episodes,
		Total:    movies + series + episodes,
	}, nil
}
