// main.go
package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/ariebrainware/patient-data-api/config"
	"github.com/ariebrainware/patient-data-api/endpoint"
	"github.com/ariebrainware/patient-data-api/middleware"
	"github.com/ariebrainware/patient-data-api/model"
	"github.com/ariebrainware/patient-data-api/store"
	"github.com/ariebrainware/patient-data-api/util"
	"github.com/gin-gonic/gin"
)

// newBackend selects the record store backend from configuration.
// The database driver also wires audit-log persistence, since a DB is
// available in that mode anyway.
func newBackend(cfg *config.Config) (store.Backend, error) {
	switch cfg.StoreDriver {
	case "file":
		return store.NewFileBackend(cfg.StoreFile), nil
	case "mysql":
		db, err := config.ConnectDatabase()
		if err != nil {
			return nil, fmt.Errorf("connect database: %w", err)
		}
		if err := db.AutoMigrate(&model.AuditLog{}); err != nil {
			return nil, fmt.Errorf("migrate audit log: %w", err)
		}
		util.SetAuditLoggerDB(db)
		return store.NewDatabaseBackend(db)
	case "redis":
		client, err := config.ConnectRedis()
		if err != nil {
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		if client == nil {
			return nil, fmt.Errorf("redis store driver selected but REDIS_ENABLED is not true")
		}
		return store.NewRedisBackend(client, store.DefaultRedisKey), nil
	default:
		return nil, fmt.Errorf("unknown store driver: %q", cfg.StoreDriver)
	}
}

func main() {
	// Load the configuration
	cfg := config.LoadConfig()

	backend, err := newBackend(cfg)
	if err != nil {
		log.Fatalf("Error initializing record store: %v", err)
	}
	recordStore := store.New(backend, cfg.StoreRetry)

	// Probe the store once so a broken backing medium fails at startup, not on
	// the first request.
	if _, err := recordStore.Load(); err != nil {
		log.Fatalf("Error loading patient data: %v", err)
	}

	// Redis also backs the rate limiter when enabled; errors here are not fatal.
	if _, err := config.ConnectRedis(); err != nil {
		log.Printf("Redis unavailable, rate limiting falls back to in-process counters: %v", err)
	}

	// GeoIP enrichment for audit logs is optional.
	if err := util.InitGeoIP(""); err != nil {
		log.Printf("GeoIP disabled: %v", err)
	}
	defer util.CloseGeoIP()

	// Set Gin mode from config
	gin.SetMode(cfg.GinMode)

	// Create a Gin router with default middleware
	router := gin.Default()
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.StoreMiddleware(recordStore))
	router.Use(middleware.EndpointCallLogger())
	router.Use(middleware.RateLimiter(middleware.RateLimitConfig{}))

	// Basic HTTP handler for root path
	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": fmt.Sprintf("Welcome to %s!", cfg.AppName),
		})
	})

	router.GET("/info", endpoint.Info)
	router.GET("/patients", endpoint.ListPatients)
	router.GET("/patients/sort", endpoint.SortPatients)
	router.GET("/patients/:id", endpoint.GetPatient)
	router.POST("/patients", endpoint.CreatePatient)
	router.PUT("/patients/:id", endpoint.UpdatePatient)
	router.DELETE("/patients/:id", endpoint.DeletePatient)

	// Start server on specified port
	address := fmt.Sprintf(":%d", cfg.AppPort)
	if err := router.Run(address); err != nil {
		log.Fatalf("error starting server: %v", err)
	}
}
