// Package server assembles the HTTP surface of the catalog service.
package server

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/voralis/catalogd/internal/server/handlers"
)

// registerRoutes wires every endpoint onto the router.
func registerRoutes(r *gin.Engine, h *handlers.Handler, eventsHandler *handlers.EventsHandler) {
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	{
		api.GET("/health", h.HealthCheck)
		api.GET("/stats", h.GetGlobalStats)
		api.GET("/media", h.GetCombinedMedia)
		api.GET("/complete", h.GetCompleteCatalog)
		api.GET("/episodes", h.QueryEpisodes)
		api.GET("/events/stream", eventsHandler.Stream)

		movies := api.Group("/movies")
		{
			movies.GET("", h.ListMovies)
			movies.POST("", h.CreateMovie)
			movies.GET("/:name", h.GetMovie)
			movies.PUT("/:name", h.UpdateMovie)
			movies.DELETE("/:name", h.DeleteMovie)
		}

		series := api.Group("/series")
		{
			series.GET("", h.ListSeries)
			series.POST("", h.CreateSeries)
			series.GET("/:seriesName", h.GetSeries)
			series.PUT("/:seriesName", h.UpdateSeries)
			series.DELETE("/:seriesName", h.DeleteSeries)

			series.GET("/:seriesName/complete", h.GetCompleteSeries)
			series.GET("/:seriesName/stats", h.GetSeriesStats)

			seasons := series.Group("/:seriesName/seasons")
			{
				seasons.GET("", h.ListSeasons)
				seasons.POST("", h.CreateSeason)
				seasons.GET("/:seasonNumber", h.GetSeason)
				seasons.PUT("/:seasonNumber", h.UpdateSeason)
				seasons.DELETE("/:seasonNumber", h.DeleteSeason)

				episodes := seasons.Group("/:seasonNumber/episodes")
				{
					episodes.GET("", h.ListSeasonEpisodes)
					episodes.POST("", h.CreateEpisode)
					episodes.POST("/bulk", h.BulkCreateEpisodes)
					episodes.GET("/:episodeNumber", h.GetEpisode)
					episodes.PUT("/:episodeNumber", h.UpdateEpisode)
					episodes.DELETE("/:episodeNumber", h.DeleteEpisode)
				}
			}
		}
	}
}
