package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/voralis/catalogd/internal/apperrors"
	"github.com/voralis/catalogd/internal/database"
)

// ListSeasons handles GET /api/series/:seriesName/seasons
func (h *Handler) ListSeasons(c *gin.Context) {
	seasons, err := h.catalog.ListSeasons(c.Request.Context(), c.Param("seriesName"))
	if err != nil {
		apperrors.Handle(c, err)
		return
	}
	c.JSON(http.StatusOK, seasons)
}

// GetSeason handles GET /api/series/:seriesName/seasons/:seasonNumber
func (h *Handler) GetSeason(c *gin.Context) {
	seasonNumber, ok := pathInt(c, "seasonNumber")
	if !ok {
		return
	}
	season, err := h.catalog.GetSeason(c.Request.Context(), c.Param("seriesName"), seasonNumber)
	if err != nil {
		apperrors.Handle(c, err)
		return
	}
	c.JSON(http.StatusOK, season)
}

// CreateSeason handles POST /api/series/:seriesName/seasons. The series name
// comes from the route; a series_name in the body is ignored.
func (h *Handler) CreateSeason(c *gin.Context) {
	var season database.Season
	if err := c.ShouldBindJSON(&season); err != nil {
		apperrors.NewValidationError("invalid request body: " + err.Error()).ToGinResponse(c)
		return
	}
	season.SeriesName = c.Param("seriesName")
	created, err := h.catalog.CreateSeason(c.Request.Context(), &season)
	if err != nil {
		apperrors.Handle(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// UpdateSeason handles PUT /api/series/:seriesName/seasons/:seasonNumber
func (h *Handler) UpdateSeason(c *gin.Context) {
	seasonNumber, ok := pathInt(c, "seasonNumber")
	if !ok {
		return
	}
	var season database.Season
	if err := c.ShouldBindJSON(&season); err != nil {
		apperrors.NewValidationError("invalid request body: " + err.Error()).ToGinResponse(c)
		return
	}
	updated, err := h.catalog.UpdateSeason(c.Request.Context(), c.Param("seriesName"), seasonNumber, &season)
	if err != nil {
		apperrors.Handle(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DeleteSeason handles DELETE /api/series/:seriesName/seasons/:seasonNumber
// and cascades to the season's episodes.
func (h *Handler) DeleteSeason(c *gin.Context) {
	seasonNumber, ok := pathInt(c, "seasonNumber")
	if !ok {
		return
	}
	name := c.Param("seriesName")
	result, err := h.catalog.DeleteSeason(c.Request.Context(), name, seasonNumber)
	if err != nil {
		apperrors.Handle(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":          "season and all its episodes deleted",
		"series":           name,
		"season":           seasonNumber,
		"episodes_deleted": result.EpisodesDeleted,
	})
}
