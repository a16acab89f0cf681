package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/datatrail-io/datatrail/internal/config"
	"github.com/datatrail-io/datatrail/internal/database"
	"github.com/datatrail-io/datatrail/internal/services"
	"github.com/datatrail-io/datatrail/internal/store"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Open the configured store variant
	var st store.Store
	if cfg.StoreType == "memory" {
		st = store.NewMemoryStore()
	} else {
		db, err := database.Connect(cfg)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		st = store.NewGormStore(db)
	}

	// Perform health check
	result := services.HealthCheck(context.Background(), cfg, st)

	// Close explicitly; os.Exit below would skip a deferred call
	if err := st.Close(); err != nil {
		log.Printf("Failed to close store: %v", err)
	}

	// Output result as JSON
	output, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		log.Fatalf("Failed to marshal health check result: %v", err)
	}

	fmt.Println(string(output))

	// Exit with appropriate code
	if result.Status != "healthy" {
		os.Exit(1)
	}
	os.Exit(0)
}
