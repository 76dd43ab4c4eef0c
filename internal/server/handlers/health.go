package handlers

import (
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shirou/gopsutil/v4/mem"

	"github.com/voralis/catalogd/internal/database"
	"github.com/voralis/catalogd/internal/logger"
)

// HealthCheck handles GET /api/health. The endpoint always answers; a store
// outage flips status to degraded instead of failing the probe.
func (h *Handler) HealthCheck(c *gin.Context) {
	storeConnected := true
	if err := database.Ping(c.Request.Context(), h.db); err != nil {
		storeConnected = false
		logger.Warn("health check: store unreachable", "error", err)
	}

	status := "ok"
	if !storeConnected {
		status = "degraded"
	}

	response := gin.H{
		"status":         status,
		"timestamp":      time.Now().UTC().Format(time.RFC3339),
		"storeConnected": storeConnected,
		"goroutines":     runtime.NumGoroutine(),
	}

	if vm, err := mem.VirtualMemory(); err == nil {
		response["memory_used_percent"] = vm.UsedPercent
	}

	c.JSON(http.StatusOK, response)
}
