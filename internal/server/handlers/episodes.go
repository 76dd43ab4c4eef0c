package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/voralis/catalogd/internal/apperrors"
	"github.com/voralis/catalogd/internal/database"
	"github.com/voralis/catalogd/internal/repository"
)

// ListSeasonEpisodes handles
// GET /api/series/:seriesName/seasons/:seasonNumber/episodes
func (h *Handler) ListSeasonEpisodes(c *gin.Context) {
	seasonNumber, ok := pathInt(c, "seasonNumber")
	if !ok {
		return
	}
	episodes, err := h.catalog.ListEpisodes(c.Request.Context(), repository.EpisodeFilter{
		Series: c.Param("seriesName"),
		Season: &seasonNumber,
	})
	if err != nil {
		apperrors.Handle(c, err)
		return
	}
	c.JSON(http.StatusOK, episodes)
}

// QueryEpisodes handles GET /api/episodes?series=&season=&search= — the flat
// episode query across all series.
func (h *Handler) QueryEpisodes(c *gin.Context) {
	filter := repository.EpisodeFilter{
		Series: c.Query("series"),
		Search: c.Query("search"),
	}
	if seasonStr := c.Query("season"); seasonStr != "" {
		season, err := strconv.Atoi(seasonStr)
		if err != nil {
			apperrors.NewValidationError("season must be an integer", "season").ToGinResponse(c)
			return
		}
		filter.Season = &season
	}
	episodes, err := h.catalog.ListEpisodes(c.Request.Context(), filter)
	if err != nil {
		apperrors.Handle(c, err)
		return
	}
	c.JSON(http.StatusOK, episodes)
}

// GetEpisode handles
// GET /api/series/:seriesName/seasons/:seasonNumber/episodes/:episodeNumber
func (h *Handler) GetEpisode(c *gin.Context) {
	seasonNumber, ok := pathInt(c, "seasonNumber")
	if !ok {
		return
	}
	episodeNumber, ok := pathInt(c, "episodeNumber")
	if !ok {
		return
	}
	episode, err := h.catalog.GetEpisode(c.Request.Context(),
		c.Param("seriesName"), seasonNumber, episodeNumber)
	if err != nil {
		apperrors.Handle(c, err)
		return
	}
	c.JSON(http.StatusOK, episode)
}

// CreateEpisode handles
// POST /api/series/:seriesName/seasons/:seasonNumber/episodes. Natural key
// components in the body are overridden by the route.
func (h *Handler) CreateEpisode(c *gin.Context) {
	seasonNumber, ok := pathInt(c, "seasonNumber")
	if !ok {
		return
	}
	var episode database.Episode
	if err := c.ShouldBindJSON(&episode); err != nil {
		apperrors.NewValidationError("invalid request body: " + err.Error()).ToGinResponse(c)
		return
	}
	episode.SeriesName = c.Param("seriesName")
	episode.SeasonNumber = seasonNumber
	created, err := h.catalog.CreateEpisode(c.Request.Context(), &episode)
	if err != nil {
		apperrors.Handle(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// BulkCreateEpisodes handles
// POST /api/series/:seriesName/seasons/:seasonNumber/episodes/bulk with body
// {"episodes": [...]}. The batch is atomic.
func (h *Handler) BulkCreateEpisodes(c *gin.Context) {
	seasonNumber, ok := pathInt(c, "seasonNumber")
	if !ok {
		return
	}
	var body struct {
		Episodes []database.Episode `json:"episodes"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		apperrors.NewValidationError("invalid request body: " + err.Error()).ToGinResponse(c)
		return
	}
	inserted, err := h.catalog.BulkCreateEpisodes(c.Request.Context(),
		c.Param("seriesName"), seasonNumber, body.Episodes)
	if err != nil {
		apperrors.Handle(c, err)
		return
	}
	c.JSON(http.StatusCreated, inserted)
}

// UpdateEpisode handles
// PUT /api/series/:seriesName/seasons/:seasonNumber/episodes/:episodeNumber
func (h *Handler) UpdateEpisode(c *gin.Context) {
	seasonNumber, ok := pathInt(c, "seasonNumber")
	if !ok {
		return
	}
	episodeNumber, ok := pathInt(c, "episodeNumber")
	if !ok {
		return
	}
	var episode database.Episode
	if err := c.ShouldBindJSON(&episode); err != nil {
		apperrors.NewValidationError("invalid request body: " + err.Error()).ToGinResponse(c)
		return
	}
	updated, err := h.catalog.UpdateEpisode(c.Request.Context(),
		c.Param("seriesName"), seasonNumber, episodeNumber, &episode)
	if err != nil {
		apperrors.Handle(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DeleteEpisode handles
// DELETE /api/series/:seriesName/seasons/:seasonNumber/episodes/:episodeNumber
func (h *Handler) DeleteEpisode(c *gin.Context) {
	seasonNumber, ok := pathInt(c, "seasonNumber")
	if !ok {
		return
	}
	episodeNumber, ok := pathInt(c, "episodeNumber")
	if !ok {
		return
	}
	if _, err := h.catalog.DeleteEpisode(c.Request.Context(),
		c.Param("seriesName"), seasonNumber, episodeNumber); err != nil {
		apperrors.Handle(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "episode deleted",
		"series":  c.Param("seriesName"),
		"season":  seasonNumber,
		"episode": episodeNumber,
	})
}
