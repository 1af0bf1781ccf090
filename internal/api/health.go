package api

import "github.com/gin-gonic/gin"

// HealthHandler provides liveness and readiness endpoints.
//
//   - /healthz: liveness probe, always 200 while the process runs.
//   - /readyz: readiness probe, 200 only while the store is reachable.
type HealthHandler struct {
	dbPing func() error
}

// NewHealthHandler constructs a HealthHandler around a store connectivity
// check, typically db.Ping from *sql.DB.
func NewHealthHandler(dbPing func() error) *HealthHandler {
	return &HealthHandler{dbPing: dbPing}
}

// Register mounts the health and readiness endpoints on the router.
func (h *HealthHandler) Register(r *gin.Engine) {
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	r.GET("/readyz", func(c *gin.Context) {
		if h.dbPing != nil && h.dbPing() != nil {
			c.JSON(503, gin.H{"status": "degraded"})
			return
		}
		c.JSON(200, gin.H{"status": "ready"})
	})
}
