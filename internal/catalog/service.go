// Package catalog implements the core of the media catalog: the hierarchy
// consistency engine, the view composer, the statistics aggregator and the
// search resolver, all on top of the typed repositories.
package catalog

import (
	"context"
	"errors"

	"github.com/hashicorp/go-hclog"
	"gorm.io/gorm"

	"github.com/voralis/catalogd/internal/apperrors"
	"github.com/voralis/catalogd/internal/config"
	"github.com/voralis/catalogd/internal/database"
	"github.com/voralis/catalogd/internal/events"
	"github.com/voralis/catalogd/internal/logger"
	"github.com/voralis/catalogd/internal/repository"
)

// Service exposes every catalog operation. All state lives in the store; a
// Service is safe for concurrent use.
type Service struct {
	db       *gorm.DB
	movies   *repository.MovieRepository
	series   *repository.SeriesRepository
	seasons  *repository.SeasonRepository
	episodes *repository.EpisodeRepository
	bus      *events.Bus
	cfg      config.CatalogConfig
	log      hclog.Logger
}

// NewService wires a Service onto the given store handle. bus may be nil
// when no event consumers exist (tests, CLI tools).
func NewService(db *gorm.DB, bus *events.Bus, cfg config.CatalogConfig) *Service {
	return &Service{
		db:       db,
		movies:   repository.NewMovieRepository(db),
		series:   repository.NewSeriesRepository(db),
		seasons:  repository.NewSeasonRepository(db),
		episodes: repository.NewEpisodeRepository(db),
		bus:      bus,
		cfg:      cfg,
		log:      logger.Named("catalog"),
	}
}

// publish emits a mutation event when a bus is attached.
func (s *Service) publish(eventType string, data map[string]interface{}) {
	if s.bus == nil {
		return
	}
	s.bus.Publish(events.Event{Type: eventType, Data: data})
}

// mapErr converts repository-level failures into the API error taxonomy.
// Typed errors (validation) pass through untouched.
func mapErr(err error, operation, resource, key string) error {
	var appErr *apperrors.Error
	if errors.As(err, &appErr) {
		return appErr
	}
	if errors.Is(err, repository.ErrNotFound) {
		return apperrors.NewNotFoundError(resource, key)
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperrors.NewValidationError(resource+" already exists", "name")
	}
	return apperrors.NewStoreError(operation, err)
}

// --- Movies ---

// ListMovies returns movies, optionally filtered by a case-insensitive
// substring search on name.
func (s *Service) ListMovies(ctx context.Context, search string) ([]database.Movie, error) {
	movies, err := s.movies.Find(ctx, search)
	if err != nil {
		return nil, mapErr(err, "list movies", "movie", search)
	}
	return movies, nil
}

// GetMovie returns one movie by name.
func (s *Service) GetMovie(ctx context.Context, name string) (*database.Movie, error) {
	movie, err := s.movies.FindOne(ctx, name)
	if err != nil {
		return nil, mapErr(err, "get movie", "movie", name)
	}
	return movie, nil
}

// CreateMovie inserts a new movie.
func (s *Service) CreateMovie(ctx context.Context, movie *database.Movie) (*database.Movie, error) {
	if err := s.movies.Insert(ctx, movie); err != nil {
		return nil, mapErr(err, "create movie", "movie", movie.Name)
	}
	s.publish(events.TypeMovieCreated, map[string]interface{}{"name": movie.Name})
	return movie, nil
}

// UpdateMovie replaces the movie with the given name.
func (s *Service) UpdateMovie(ctx context.Context, name string, doc *database.Movie) (*database.Movie, error) {
	updated, err := s.movies.Update(ctx, name, doc)
	if err != nil {
		return nil, mapErr(err, "update movie", "movie", name)
	}
	s.publish(events.TypeMovieUpdated, map[string]interface{}{"name": name})
	return updated, nil
}

// DeleteMovie removes the movie with the given name.
func (s *Service) DeleteMovie(ctx context.Context, name string) (*database.Movie, error) {
	deleted, err := s.movies.Delete(ctx, name)
	if err != nil {
		return nil, mapErr(err, "delete movie", "movie", name)
	}
	s.publish(events.TypeMovieDeleted, map[string]interface{}{"name": name})
	return deleted, nil
}
