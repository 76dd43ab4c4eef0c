package catalog

import (
	"context"

	"gorm.io/gorm"

	"github.com/voralis/catalogd/internal/apperrors"
	"github.com/voralis/catalogd/internal/events"
	"github.com/voralis/catalogd/internal/repository"
)

// CascadeResult reports what a cascade delete removed.
type CascadeResult struct {
	SeasonsDeleted  int64 `json:"seasons_deleted"`
	EpisodesDeleted int64 `json:"episodes_deleted"`
}

// DeleteSeries removes a series and every season and episode carrying its
// name. The parent is deleted first; a parent miss aborts with NotFound and
// touches no children.
//
// With cascade transactions enabled (the default) the whole sequence is one
// store transaction. Without them it is the best-effort multi-step sequence:
// a child delete failure after a successful parent delete surfaces as a
// partial-cascade error, never as silent success.
func (s *Service) DeleteSeries(ctx context.Context, name string) (*CascadeResult, error) {
	var result CascadeResult

	if s.cfg.CascadeTransactions {
		err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			return deleteSeriesCascade(ctx, tx, name, &result)
		})
		if err != nil {
			return nil, mapErr(err, "delete series", "series", name)
		}
	} else {
		if _, err := s.series.Delete(ctx, name); err != nil {
			return nil, mapErr(err, "delete series", "series", name)
		}
		n, err := s.seasons.DeleteBySeries(ctx, name)
		if err != nil {
			s.log.Error("cascade: series deleted but season cleanup failed",
				"series", name, "error", err)
			return nil, apperrors.NewPartialCascadeError(name, "delete seasons", err)
		}
		result.SeasonsDeleted = n
		n, err = s.episodes.DeleteBySeries(ctx, name)
		if err != nil {
			s.log.Error("cascade: series deleted but episode cleanup failed",
				"series", name, "error", err)
			return nil, apperrors.NewPartialCascadeError(name, "delete episodes", err)
		}
		result.EpisodesDeleted = n
	}

	s.log.Info("series deleted",
		"series", name,
		"seasons", result.SeasonsDeleted,
		"episodes", result.EpisodesDeleted)
	s.publish(events.TypeSeriesDeleted, map[string]interface{}{
		"name":     name,
		"seasons":  result.SeasonsDeleted,
		"episodes": result.EpisodesDeleted,
	})
	return &result, nil
}

// DeleteSeason removes one season and every episode of it, with the same
// parent-first and atomicity rules as DeleteSeries.
func (s *Service) DeleteSeason(ctx context.Context, seriesName string, seasonNumber int) (*CascadeResult, error) {
	var result CascadeResult

	if s.cfg.CascadeTransactions {
		err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			return deleteSeasonCascade(ctx, tx, seriesName, seasonNumber, &result)
		})
		if err != nil {
			return nil, mapErr(err, "delete season", "season", seasonKey(seriesName, seasonNumber))
		}
	} else {
		if _, err := s.seasons.Delete(ctx, seriesName, seasonNumber); err != nil {
			return nil, mapErr(err, "delete season", "season", seasonKey(seriesName, seasonNumber))
		}
		result.SeasonsDeleted = 1
		n, err := s.episodes.DeleteBySeason(ctx, seriesName, seasonNumber)
		if err != nil {
			s.log.Error("cascade: season deleted but episode cleanup failed",
				"series", seriesName, "season", seasonNumber, "error", err)
			return nil, apperrors.NewPartialCascadeError(
				seasonKey(seriesName, seasonNumber), "delete episodes", err)
		}
		result.EpisodesDeleted = n
	}

	s.log.Info("season deleted",
		"series", seriesName,
		"season", seasonNumber,
		"episodes", result.EpisodesDeleted)
	s.publish(events.TypeSeasonDeleted, map[string]interface{}{
		"series":   seriesName,
		"season":   seasonNumber,
		"episodes": result.EpisodesDeleted,
	})
	return &result, nil
}

func deleteSeriesCascade(ctx context.Context, tx *gorm.DB, name string, result *CascadeResult) error {
	if _, err := repository.NewSeriesRepository(tx).Delete(ctx, name); err != nil {
		return err
	}
	n, err := repository.NewSeasonRepository(tx).DeleteBySeries(ctx, name)
	if err != nil {
		return err
	}
	result.SeasonsDeleted = n
	n, err = repository.NewEpisodeRepository(tx).DeleteBySeries(ctx, name)
	if err != nil {
		return err
	}
	result.EpisodesDeleted = n
	return nil
}

func deleteSeasonCascade(ctx context.Context, tx *gorm.DB, seriesName string, seasonNumber int, result *CascadeResult) error {
	if _, err := repository.NewSeasonRepository(tx).Delete(ctx, seriesName, seasonNumber); err != nil {
		return err
	}
	result.SeasonsDeleted = 1
	n, err := repository.NewEpisodeRepository(tx).DeleteBySeason(ctx, seriesName, seasonNumber)
	if err != nil {
		return err
	}
	result.EpisodesDeleted = n
	return nil
}
