package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/voralis/catalogd/internal/apperrors"
	"github.com/voralis/catalogd/internal/database"
)

func testMovie(name string) *database.Movie {
	return &database.Movie{
		Name:         name,
		Thumbnail:    "https://img.example/" + name + ".jpg",
		StreamingURL: "https://stream.example/" + name,
	}
}

func TestMovieInsertAndFindOne(t *testing.T) {
	repo := NewMovieRepository(NewTestDB(t))
	ctx := context.Background()

	movie := testMovie("Arrival")
	require.NoError(t, repo.Insert(ctx, movie))
	assert.NotEmpty(t, movie.ID)
	assert.False(t, movie.AddedAt.IsZero())

	got, err := repo.FindOne(ctx, "Arrival")
	require.NoError(t, err)
	assert.Equal(t, movie.ID, got.ID)
	assert.Equal(t, "https://stream.example/Arrival", got.StreamingURL)
}

func TestMovieFindOneMissing(t *testing.T) {
	repo := NewMovieRepository(NewTestDB(t))

	_, err := repo.FindOne(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMovieInsertValidation(t *testing.T) {
	repo := NewMovieRepository(NewTestDB(t))

	err := repo.Insert(context.Background(), &database.Movie{Name: "Solaris"})
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))

	var appErr *apperrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.ElementsMatch(t, []string{"thumbnail", "streaming_url"}, appErr.Context["fields"])
}

func TestMovieInsertDuplicateName(t *testing.T) {
	repo := NewMovieRepository(NewTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Insert(ctx, testMovie("Dune")))
	err := repo.Insert(ctx, testMovie("Dune"))
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}

func TestMovieSearchIsCaseInsensitive(t *testing.T) {
	repo := NewMovieRepository(NewTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Insert(ctx, testMovie("The Matrix")))
	require.NoError(t, repo.Insert(ctx, testMovie("Matrix Reloaded")))
	require.NoError(t, repo.Insert(ctx, testMovie("Blade Runner")))

	got, err := repo.Find(ctx, "mAtRiX")
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestMovieSearchEscapesLikeMetacharacters(t *testing.T) {
	repo := NewMovieRepository(NewTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Insert(ctx, testMovie("100% Wolf")))
	require.NoError(t, repo.Insert(ctx, testMovie("1000 Ways")))
	require.NoError(t, repo.Insert(ctx, testMovie("snake_case")))
	require.NoError(t, repo.Insert(ctx, testMovie("snakeXcase")))

	got, err := repo.Find(ctx, "100%")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "100% Wolf", got[0].Name)

	got, err = repo.Find(ctx, "snake_")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "snake_case", got[0].Name)
}

func TestMovieUpdatePreservesIdentityAndAddedAt(t *testing.T) {
	repo := NewMovieRepository(NewTestDB(t))
	ctx := context.Background()

	movie := testMovie("Alien")
	movie.AddedAt = time.Date(2020, 3, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Insert(ctx, movie))

	updated, err := repo.Update(ctx, "Alien", &database.Movie{
		Name:         "Alien",
		Thumbnail:    "https://img.example/alien-v2.jpg",
		StreamingURL: "https://stream.example/alien-v2",
	})
	require.NoError(t, err)
	assert.Equal(t, movie.ID, updated.ID)
	assert.True(t, movie.AddedAt.Equal(updated.AddedAt))
	assert.Equal(t, "https://img.example/alien-v2.jpg", updated.Thumbnail)
}

func TestMovieUpdateMissing(t *testing.T) {
	repo := NewMovieRepository(NewTestDB(t))

	_, err := repo.Update(context.Background(), "ghost", testMovie("ghost"))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMovieDeleteReturnsRemovedRow(t *testing.T) {
	repo := NewMovieRepository(NewTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Insert(ctx, testMovie("Heat")))

	deleted, err := repo.Delete(ctx, "Heat")
	require.NoError(t, err)
	assert.Equal(t, "Heat", deleted.Name)

	_, err = repo.FindOne(ctx, "Heat")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = repo.Delete(ctx, "Heat")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMovieCount(t *testing.T) {
	repo := NewMovieRepository(NewTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Insert(ctx, testMovie("A")))
	require.NoError(t, repo.Insert(ctx, testMovie("B")))

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)
}
