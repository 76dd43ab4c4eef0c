package catalog

import (
	"context"
	"sort"
	"time"

	"github.com/voralis/catalogd/internal/database"
	"github.com/voralis/catalogd/internal/repository"
)

func episodesOfSeries(name string) repository.EpisodeFilter {
	return repository.EpisodeFilter{Series: name}
}

// CompleteSeason is a season with its episodes nested, ordered by episode
// number ascending.
type CompleteSeason struct {
	database.Season
	Episodes []database.Episode `json:"episodes"`
}

// CompleteSeries is the fully nested series view: series, seasons ordered by
// season number, each season carrying its episodes.
type CompleteSeries struct {
	database.Series
	Seasons []CompleteSeason `json:"seasons"`
}

// MediaItem is one entry of the combined media view: a movie or a series
// summary tagged with its kind. Seasons and episodes are never nested here.
type MediaItem struct {
	Type         string    `json:"type"`
	Name         string    `json:"name"`
	Thumbnail    string    `json:"thumbnail"`
	StreamingURL string    `json:"streaming_url,omitempty"`
	Description  string    `json:"description,omitempty"`
	AddedBy      *int      `json:"added_by,omitempty"`
	AddedAt      time.Time `json:"added_at"`
}

// CompleteSeries composes the nested view for one series. The series row
// must exist; orphaned seasons or episodes under the same name do not
// resurrect a deleted series.
func (s *Service) CompleteSeries(ctx context.Context, name string) (*CompleteSeries, error) {
	series, err := s.series.FindOne(ctx, name)
	if err != nil {
		return nil, mapErr(err, "complete series", "series", name)
	}
	return s.composeSeries(ctx, *series)
}

// CompleteCatalog composes the nested view for every series matching the
// optional search. Outer order follows the series query order.
func (s *Service) CompleteCatalog(ctx context.Context, search string) ([]CompleteSeries, error) {
	series, err := s.series.Find(ctx, search)
	if err != nil {
		return nil, mapErr(err, "complete catalog", "series", search)
	}

	catalog := make([]CompleteSeries, 0, len(series))
	for _, sr := range series {
		composed, err := s.composeSeries(ctx, sr)
		if err != nil {
			return nil, err
		}
		catalog = append(catalog, *composed)
	}
	return catalog, nil
}

// CombinedMedia merges movies and series into one flat, type-tagged list
// sorted by added_at descending. Ties keep store order (stable sort).
func (s *Service) CombinedMedia(ctx context.Context, search string) ([]MediaItem, error) {
	movies, err := s.movies.Find(ctx, search)
	if err != nil {
		return nil, mapErr(err, "combined media", "movie", search)
	}
	series, err := s.series.Find(ctx, search)
	if err != nil {
		return nil, mapErr(err, "combined media", "series", search)
	}

	items := make([]MediaItem, 0, len(movies)+len(series))
	for _, m := range movies {
		items = append(items, MediaItem{
			Type:         "movie",
			Name:         m.Name,
			Thumbnail:    m.Thumbnail,
			StreamingURL: m.StreamingURL,
			AddedBy:      m.AddedBy,
			AddedAt:      m.AddedAt,
		})
	}
	for _, sr := range series {
		items = append(items, MediaItem{
			Type:        "series",
			Name:        sr.Name,
			Thumbnail:   sr.Thumbnail,
			Description: sr.Description,
			AddedAt:     sr.AddedAt,
		})
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].AddedAt.After(items[j].AddedAt)
	})
	return items, nil
}

// composeSeries joins the three flat collections into the nested shape.
// Episodes are grouped under their season by exact season number equality;
// an episode whose season row is missing is dropped from the view rather
// than invented a season.
func (s *Service) composeSeries(ctx context.Context, series database.Series) (*CompleteSeries, error) {
	seasons, err := s.seasons.Find(ctx, series.Name)
	if err != nil {
		return nil, mapErr(err, "compose series", "season", series.Name)
	}
	episodes, err := s.episodes.Find(ctx, episodesOfSeries(series.Name))
	if err != nil {
		return nil, mapErr(err, "compose series", "episode", series.Name)
	}

	bySeason := make(map[int][]database.Episode, len(seasons))
	for _, ep := range episodes {
		bySeason[ep.SeasonNumber] = append(bySeason[ep.SeasonNumber], ep)
	}

	composed := &CompleteSeries{
		Series:  series,
		Seasons: make([]CompleteSeason, 0, len(seasons)),
	}
	for _, season := range seasons {
		group := bySeason[season.SeasonNumber]
		if group == nil {
			group = []database.Episode{}
		}
		composed.Seasons = append(composed.Seasons, CompleteSeason{
			Season:   season,
			Episodes: group,
		})
	}
	return composed, nil
}
