package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/voralis/catalogd/internal/apperrors"
)

// GetCompleteSeries handles GET /api/series/:seriesName/complete and returns
// the fully nested series view.
func (h *Handler) GetCompleteSeries(c *gin.Context) {
	composed, err := h.catalog.CompleteSeries(c.Request.Context(), c.Param("seriesName"))
	if err != nil {
		apperrors.Handle(c, err)
		return
	}
	c.JSON(http.StatusOK, composed)
}

// GetCompleteCatalog handles GET /api/complete?search= and returns the
// nested view for every matching series.
func (h *Handler) GetCompleteCatalog(c *gin.Context) {
	composed, err := h.catalog.CompleteCatalog(c.Request.Context(), c.Query("search"))
	if err != nil {
		apperrors.Handle(c, err)
		return
	}
	c.JSON(http.StatusOK, composed)
}

// GetCombinedMedia handles GET /api/media?search= and returns the flat,
// type-tagged movie+series list, most recently added first.
func (h *Handler) GetCombinedMedia(c *gin.Context) {
	items, err := h.catalog.CombinedMedia(c.Request.Context(), c.Query("search"))
	if err != nil {
		apperrors.Handle(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}
