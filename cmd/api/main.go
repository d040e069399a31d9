package main

import (
	"log"

	"parley/internal/app/bootstrap"
)

// API process entrypoint.
// Data flow:
// 1) Load config.
// 2) Build app wiring (ports + adapters + use cases).
// 3) Start HTTP server.
func main() {
	app, err := bootstrap.BuildAPI()
	if err != nil {
		log.Fatalf("parley api bootstrap failed: %v", err)
	}
	defer func() {
		if err := app.Close(); err != nil {
			log.Printf("parley api shutdown cleanup failed: %v", err)
		}
	}()

	if err := app.Run(); err != nil {
		log.Fatalf("parley api server stopped: %v", err)
	}
}
