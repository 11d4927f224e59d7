package api

import "github.com/gin-gonic/gin"

// HealthHandler provides liveness and readiness endpoints for the service.
type HealthHandler struct {
	storePing func() error // Reports whether the backing store directory is reachable
}

// NewHealthHandler constructs a HealthHandler. storePing is typically
// storage.DatasetStore.Ping; nil means always ready.
func NewHealthHandler(storePing func() error) *HealthHandler {
	return &HealthHandler{storePing: storePing}
}

// Register mounts the health and readiness endpoints into the provided Gin router.
//
// Routes:
//   - GET /healthz: Always returns 200 OK.
//   - GET /readyz: Returns 200 OK if the backing store is reachable, 503 otherwise.
func (h *HealthHandler) Register(r *gin.Engine) {
	// Liveness probe
	// @Summary      Liveness probe
	// @Description  Always returns OK if the service is running
	// @Tags         health
	// @Produce      json
	// @Success      200  {object}  map[string]string
	// @Router       /healthz [get]
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Readiness probe (checks the data directory)
	// @Summary      Readiness probe
	// @Description  Returns ready if the backing store directory is reachable
	// @Tags         health
	// @Produce      json
	// @Success      200  {object}  map[string]string
	// @Failure      503  {object}  map[string]string
	// @Router       /readyz [get]
	r.GET("/readyz", func(c *gin.Context) {
		if h.storePing != nil && h.storePing() != nil {
			c.JSON(503, gin.H{"status": "degraded"})
			return
		}
		c.JSON(200, gin.H{"status": "ready"})
	})
}
