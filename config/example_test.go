package config_test

import (
	"context"
	"fmt"
	"log"

	"github.com/sagarc03/dirtar/config"
)

func ExampleLoad() {
	// Load with defaults only (no config file)
	cfg, err := config.Load(nil, nil)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("Address: %s, Root: %s\n", cfg.Server.Address, cfg.Archive.Root)
	// Output: Address: 127.0.0.1:0, Root: .
}

func ExampleWithContext() {
	cfg, _ := config.Load(nil, nil)

	// Store config in context
	ctx := config.WithContext(context.Background(), cfg)

	// Retrieve later (e.g., in a subcommand)
	retrieved, err := config.FromContext(ctx)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("Retrieved address: %s\n", retrieved.Server.Address)
	// Output: Retrieved address: 127.0.0.1:0
}
