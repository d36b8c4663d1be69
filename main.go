package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/example/maternal/internal/baby"
	"github.com/example/maternal/internal/chat"
	"github.com/example/maternal/internal/identity"
	"github.com/example/maternal/internal/knowledge"
	"github.com/example/maternal/internal/pregnancy"
	"github.com/example/maternal/internal/server"
	"github.com/example/maternal/internal/sheets"
	"github.com/example/maternal/internal/storage"
	"github.com/example/maternal/internal/tracking"
)

func main() {
	// .env is optional; real deployments set the environment directly
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	store, err := storage.Connect()
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer store.Close()

	catalog, err := knowledge.Load()
	if err != nil {
		log.Fatalf("Failed to load knowledge content: %v", err)
	}

	// Without a relay URL tracking degrades to a no-op instead of buffering
	// events that can never be delivered
	var queue tracking.Queue
	if url := os.Getenv("TRACKING_WEBAPP_URL"); url != "" {
		queue = tracking.NewEventQueue(store, sheets.NewClient(url))
	} else {
		log.Println("TRACKING_WEBAPP_URL is not set, usage tracking is disabled")
		queue = tracking.NopQueue{}
	}

	tracker := tracking.NewTracker(queue, identity.New(store))
	progress := tracking.NewAggregator(store, tracker, catalog.AllSectionIDs())

	srv := server.New(
		catalog,
		tracker,
		progress,
		chat.NewManager(store, tracker),
		pregnancy.NewService(store),
		baby.NewService(store),
	)

	addr := os.Getenv("LISTEN_ADDR")
	if addr == "" {
		addr = ":8080"
	}
	httpServer := &http.Server{
		Addr:    addr,
		Handler: srv.Handler(),
	}

	done := make(chan struct{})
	go func() {
		sig := <-sigChan
		log.Printf("Received signal: %v", sig)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			log.Printf("Error during shutdown: %v", err)
		}

		// Stop the periodic flush and push whatever is still buffered
		queue.Stop()
		queue.SyncNow()

		close(done)
	}()

	log.Printf("Server started on %s. Press Ctrl+C to stop.", addr)
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("Server error: %v", err)
	}

	<-done
	log.Println("Server stopped successfully")
}
