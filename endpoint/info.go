package endpoint

import (
	"net/http"

	"github.com/ariebrainware/patient-data-api/config"
	"github.com/gin-gonic/gin"
)

// Info returns static service metadata. No store access.
func Info(c *gin.Context) {
	cfg := config.LoadConfig()
	c.JSON(http.StatusOK, gin.H{
		"name":        cfg.AppName,
		"version":     cfg.AppVersion,
		"description": cfg.AppDescription,
	})
}
