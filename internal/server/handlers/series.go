package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/voralis/catalogd/internal/apperrors"
	"github.com/voralis/catalogd/internal/database"
)

// ListSeries handles GET /api/series?search=
func (h *Handler) ListSeries(c *gin.Context) {
	series, err := h.catalog.ListSeries(c.Request.Context(), c.Query("search"))
	if err != nil {
		apperrors.Handle(c, err)
		return
	}
	c.JSON(http.StatusOK, series)
}

// GetSeries handles GET /api/series/:seriesName
func (h *Handler) GetSeries(c *gin.Context) {
	series, err := h.catalog.GetSeries(c.Request.Context(), c.Param("seriesName"))
	if err != nil {
		apperrors.Handle(c, err)
		return
	}
	c.JSON(http.StatusOK, series)
}

// CreateSeries handles POST /api/series
func (h *Handler) CreateSeries(c *gin.Context) {
	var series database.Series
	if err := c.ShouldBindJSON(&series); err != nil {
		apperrors.NewValidationError("invalid request body: " + err.Error()).ToGinResponse(c)
		return
	}
	created, err := h.catalog.CreateSeries(c.Request.Context(), &series)
	if err != nil {
		apperrors.Handle(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// UpdateSeries handles PUT /api/series/:seriesName
func (h *Handler) UpdateSeries(c *gin.Context) {
	var series database.Series
	if err := c.ShouldBindJSON(&series); err != nil {
		apperrors.NewValidationError("invalid request body: " + err.Error()).ToGinResponse(c)
		return
	}
	updated, err := h.catalog.UpdateSeries(c.Request.Context(), c.Param("seriesName"), &series)
	if err != nil {
		apperrors.Handle(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DeleteSeries handles DELETE /api/series/:seriesName and cascades to all
// seasons and episodes of the series.
func (h *Handler) DeleteSeries(c *gin.Context) {
	name := c.Param("seriesName")
	result, err := h.catalog.DeleteSeries(c.Request.Context(), name)
	if err != nil {
		apperrors.Handle(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":          "series and all its seasons and episodes deleted",
		"name":             name,
		"seasons_deleted":  result.SeasonsDeleted,
		"episodes_deleted": result.EpisodesDeleted,
	})
}
