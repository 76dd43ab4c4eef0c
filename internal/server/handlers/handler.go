// Package handlers maps the HTTP surface onto catalog operations. Handlers
// do parameter parsing and status mapping only; all catalog semantics live
// in the catalog package.
package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/voralis/catalogd/internal/apperrors"
	"github.com/voralis/catalogd/internal/catalog"
)

// Handler carries the dependencies of the catalog endpoints.
type Handler struct {
	catalog *catalog.Service
	db      *gorm.DB
}

// New creates the catalog handler set. db is used only for health checks.
func New(service *catalog.Service, db *gorm.DB) *Handler {
	return &Handler{catalog: service, db: db}
}

// pathInt parses an integer path parameter, rejecting the request with a
// validation error when it is not a positive integer.
func pathInt(c *gin.Context, name string) (int, bool) {
	value, err := strconv.Atoi(c.Param(name))
	if err != nil || value <= 0 {
		apperrors.NewValidationError(name+" must be a positive integer", name).ToGinResponse(c)
		return 0, false
	}
	return value, true
}
