package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/example/maternal/internal/relay"
)

// The relay is the receiving end of the tracking pipeline: it accepts the
// batches the main server uploads and appends them to a spreadsheet the
// care team can open directly.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	dataDir := os.Getenv("DATA_DIR")
	if dataDir == "" {
		dataDir = "data"
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}

	workbook, err := relay.NewWorkbook(filepath.Join(dataDir, "tracking.xlsx"))
	if err != nil {
		log.Fatalf("Failed to open workbook: %v", err)
	}

	addr := os.Getenv("RELAY_LISTEN_ADDR")
	if addr == "" {
		addr = ":8090"
	}
	httpServer := &http.Server{
		Addr:    addr,
		Handler: relay.Handler(workbook),
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	done := make(chan struct{})
	go func() {
		sig := <-sigChan
		log.Printf("Received signal: %v", sig)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			log.Printf("Error during shutdown: %v", err)
		}
		close(done)
	}()

	log.Printf("Relay started on %s. Press Ctrl+C to stop.", addr)
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("Relay error: %v", err)
	}

	<-done
	log.Println("Relay stopped successfully")
}
