package middleware

import (
	"fmt"
	"time"

	"github.com/ariebrainware/patient-data-api/util"
	"github.com/gin-gonic/gin"
)

// EndpointCallLogger logs each HTTP request as an audit event. Events are
// persisted to the audit_logs table when util.SetAuditLoggerDB has been called
// during startup; otherwise they go to stdout only.
func EndpointCallLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		duration := time.Since(start)
		status := c.Writer.Status()

		details := map[string]interface{}{
			"method":      c.Request.Method,
			"path":        c.FullPath(),
			"raw_path":    c.Request.URL.Path,
			"status":      status,
			"duration_ms": duration.Milliseconds(),
			"query":       c.Request.URL.RawQuery,
		}
		if id := c.Param("id"); id != "" {
			details["patient_id"] = id
		}

		util.LogAuditEvent(util.AuditEvent{
			EventType: util.EventEndpointCall,
			PatientID: c.Param("id"),
			IP:        c.ClientIP(),
			UserAgent: c.Request.UserAgent(),
			Message:   fmt.Sprintf("%s %s -> %d", c.Request.Method, c.Request.URL.Path, status),
			Details:   details,
		})
	}
}
