package services

import (
	"context"
	"fmt"
	"log"

	"github.com/datatrail-io/datatrail/internal/config"
	"github.com/datatrail-io/datatrail/internal/store"
	"github.com/datatrail-io/datatrail/internal/utils"
)

// HealthCheckResult is the JSON shape reported by the health endpoint and
// the healthcheck binary.
type HealthCheckResult struct {
	Status       string            `json:"status"`
	Store        string            `json:"store"`
	Pinning      string            `json:"pinning"`
	Details      map[string]string `json:"details,omitempty"`
	ErrorMessage string            `json:"error,omitempty"`
}

// HealthCheck performs a comprehensive health check of the service
func HealthCheck(ctx context.Context, cfg *config.Config, st store.Store) HealthCheckResult {
	result := HealthCheckResult{
		Status:  "healthy",
		Details: make(map[string]string),
	}

	// Check store connectivity
	if err := st.Ping(ctx); err != nil {
		result.Status = "unhealthy"
		result.Store = "unreachable"
		result.Details["store_error"] = err.Error()
		result.ErrorMessage = fmt.Sprintf("Store ping failed: %v", err)
		log.Printf("Health check failed - store ping: %v", err)
	} else {
		result.Store = "ok"
		result.Details["store_type"] = cfg.StoreType
		if cfg.StoreType == "database" {
			result.Details["database_type"] = cfg.DBType
			result.Details["database_name"] = cfg.DBDatabase
		}
	}

	// Check pinning service connectivity
	if err := utils.PingPinningService(cfg.PinningAPIURL); err != nil {
		result.Status = "unhealthy"
		result.Pinning = "unreachable"
		result.Details["pinning_error"] = err.Error()
		if result.ErrorMessage == "" {
			result.ErrorMessage = fmt.Sprintf("Pinning service ping failed: %v", err)
		} else {
			result.ErrorMessage += fmt.Sprintf("; pinning service ping failed: %v", err)
		}
		log.Printf("Health check failed - pinning service ping: %v", err)
	} else {
		result.Pinning = "ok"
		result.Details["pinning_url"] = cfg.PinningAPIURL
	}

	if result.Status == "healthy" {
		log.Println("Health check passed - all systems operational")
	}

	return result
}
