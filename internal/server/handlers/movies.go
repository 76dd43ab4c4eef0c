package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/voralis/catalogd/internal/apperrors"
	"github.com/voralis/catalogd/internal/database"
)

// ListMovies handles GET /api/movies?search=
func (h *Handler) ListMovies(c *gin.Context) {
	movies, err := h.catalog.ListMovies(c.Request.Context(), c.Query("search"))
	if err != nil {
		apperrors.Handle(c, err)
		return
	}
	c.JSON(http.StatusOK, movies)
}

// GetMovie handles GET /api/movies/:name
func (h *Handler) GetMovie(c *gin.Context) {
	movie, err := h.catalog.GetMovie(c.Request.Context(), c.Param("name"))
	if err != nil {
		apperrors.Handle(c, err)
		return
	}
	c.JSON(http.StatusOK, movie)
}

// CreateMovie handles POST /api/movies
func (h *Handler) CreateMovie(c *gin.Context) {
	var movie database.Movie
	if err := c.ShouldBindJSON(&movie); err != nil {
		apperrors.NewValidationError("invalid request body: " + err.Error()).ToGinResponse(c)
		return
	}
	created, err := h.catalog.CreateMovie(c.Request.Context(), &movie)
	if err != nil {
		apperrors.Handle(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// UpdateMovie handles PUT /api/movies/:name
func (h *Handler) UpdateMovie(c *gin.Context) {
	var movie database.Movie
	if err := c.ShouldBindJSON(&movie); err != nil {
		apperrors.NewValidationError("invalid request body: " + err.Error()).ToGinResponse(c)
		return
	}
	updated, err := h.catalog.UpdateMovie(c.Request.Context(), c.Param("name"), &movie)
	if err != nil {
		apperrors.Handle(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DeleteMovie handles DELETE /api/movies/:name
func (h *Handler) DeleteMovie(c *gin.Context) {
	name := c.Param("name")
	if _, err := h.catalog.DeleteMovie(c.Request.Context(), name); err != nil {
		apperrors.Handle(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "movie deleted", "name": name})
}
