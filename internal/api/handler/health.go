package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// HealthHandler handles health check endpoints
type HealthHandler struct {
	provider string
	backend  string
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(provider, backend string) *HealthHandler {
	return &HealthHandler{provider: provider, backend: backend}
}

// Health returns the health status of the service. It does not call the
// generation provider or the archive.
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":   "ok",
		"provider": h.provider,
		"backend":  h.backend,
	})
}
