package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// HealthHandler handles health check endpoints.
type HealthHandler struct {
	serviceName string
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(serviceName string) *HealthHandler {
	return &HealthHandler{serviceName: serviceName}
}

// Root handles GET /
// @Summary Service status
// @Description Reports that the service is running
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Router / [get]
func (h *HealthHandler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{Status: h.serviceName + " running"})
}

// Liveness handles GET /healthz
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{Status: "ok"})
}
