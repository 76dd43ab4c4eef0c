package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/voralis/catalogd/internal/apperrors"
)

// GetSeriesStats handles GET /api/series/:seriesName/stats
func (h *Handler) GetSeriesStats(c *gin.Context) {
	stats, err := h.catalog.SeriesStats(c.Request.Context(), c.Param("seriesName"))
	if err != nil {
		apperrors.Handle(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// GetGlobalStats handles GET /api/stats
func (h *Handler) GetGlobalStats(c *gin.Context) {
	stats, err := h.catalog.GlobalStats(c.Request.Context())
	if err != nil {
		apperrors.Handle(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
