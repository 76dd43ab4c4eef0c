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

// MovieRepository provides typed access to the movie collection, keyed by
// movie name.
type MovieRepository struct {
	db *gorm.DB
}

func NewMovieRepository(db *gorm.DB) *MovieRepository {
	return &MovieRepository{db: db}
}

// Find returns movies matching the optional case-insensitive substring
// search on name. An empty result is a nil error.
func (r *MovieRepository) Find(ctx context.Context, search string) ([]database.Movie, error) {
	var movies []database.Movie
	query := r.db.WithContext(ctx)
	if search != "" {
		query = query.Where("LOWER(name) LIKE ?"+likeClause, likePattern(search))
	}
	if err := query.Find(&movies).Error; err != nil {
		return nil, err
	}
	return movies, nil
}

// FindOne returns the movie with the given name or ErrNotFound.
func (r *MovieRepository) FindOne(ctx context.Context, name string) (*database.Movie, error) {
	var movie database.Movie
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&movie).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &movie, nil
}

// Insert persists a new movie. Required fields are validated first; added_at
// defaults to the insertion time.
func (r *MovieRepository) Insert(ctx context.Context, movie *database.Movie) error {
	if err := validateMovie(movie); err != nil {
		return err
	}
	movie.ID = uuid.NewString()
	if movie.AddedAt.IsZero() {
		movie.AddedAt = time.Now().UTC()
	}
	return r.db.WithContext(ctx).Create(movie).Error
}

// Update replaces the stored movie with doc, keyed by name. The surrogate id
// and added_at of the stored row are preserved; everything else is replaced.
func (r *MovieRepository) Update(ctx context.Context, name string, doc *database.Movie) (*database.Movie, error) {
	existing, err := r.FindOne(ctx, name)
	if err != nil {
		return nil, err
	}
	if err := validateMovie(doc); err != nil {
		return nil, err
	}
	doc.ID = existing.ID
	doc.AddedAt = existing.AddedAt
	doc.CreatedAt = existing.CreatedAt
	if err := r.db.WithContext(ctx).Save(doc).Error; err != nil {
		return nil, err
	}
	return doc, nil
}

// Delete removes the movie with the given name and returns the removed row,
// or ErrNotFound.
func (r *MovieRepository) Delete(ctx context.Context, name string) (*database.Movie, error) {
	movie, err := r.FindOne(ctx, name)
	if err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Delete(&database.Movie{}, "name = ?", name).Error; err != nil {
		return nil, err
	}
	return movie, nil
}

// Count returns the total number of movies.
func (r *MovieRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&database.Movie{}).Count(&count).Error
	return count, err
}

func validateMovie(movie *database.Movie) error {
	var missing []string
	if movie.Name == "" {
		missing = append(missing, "name")
	}
	if movie.Thumbnail == "" {
		missing = append(missing, "thumbnail")
	}
	if movie.StreamingURL == "" {
		missing = append(missing, "streaming_url")
	}
	if len(missing) > 0 {
		return apperrors.NewValidationError("movie is missing required fields", missing...)
	}
	return nil
}
