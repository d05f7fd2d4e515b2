// ChessVariant serves a Player-versus-Computer game over HTTP and WebSocket.
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hailam/chessvariant/internal/engine"
	"github.com/hailam/chessvariant/internal/game"
	"github.com/hailam/chessvariant/internal/server"
	"github.com/hailam/chessvariant/internal/storage"
)

var (
	addr  = flag.String("addr", ":8080", "listen address")
	depth = flag.Int("depth", engine.DefaultDepth, "search depth (1-5)")
	odds  = flag.Float64("odds", engine.DefaultSwitchProbability, "probability of switching to an equally scored move")
	seed  = flag.Int64("seed", 0, "tie-break seed (0 = time based)")
	dbDir = flag.String("db", "", "database directory (default: platform data dir)")
	noDB  = flag.Bool("nodb", false, "do not persist preferences and statistics")
)

func main() {
	flag.Parse()

	eng := engine.NewEngine()
	if *seed != 0 {
		eng.Seed(*seed)
	}
	eng.OnInfo = func(info engine.SearchInfo) {
		log.Printf("[AI] depth=%d score=%d nodes=%d time=%v move=%v",
			info.Depth, info.Score, info.Nodes, info.Time, info.Move)
	}

	store := openStorage()
	if store != nil {
		defer store.Close()
	}

	hub := server.NewHub()
	g := game.New(eng, hub, store)

	// Flags given on the command line override stored preferences.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "depth":
			g.SetSearchDepth(*depth)
		case "odds":
			g.SetSwitchProbability(*odds)
		}
	})

	srv := server.New(g, hub)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go srv.Run(ctx)

	httpServer := &http.Server{
		Addr:    *addr,
		Handler: srv.Handler(),
	}
	serverErrCh := make(chan error, 1)
	go func() {
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrCh <- err
		}
		close(serverErrCh)
	}()

	sigCtx, stopSignals := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stopSignals()

	log.Printf("[server] listening on %s", *addr)
	select {
	case <-sigCtx.Done():
		log.Printf("[server] shutdown signal received: %v", sigCtx.Err())
	case err, ok := <-serverErrCh:
		if ok {
			log.Printf("[server] server error: %v", err)
		}
	}

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()
	if err := httpServer.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Printf("[server] graceful shutdown failed: %v", err)
		if closeErr := httpServer.Close(); closeErr != nil && !errors.Is(closeErr, http.ErrServerClosed) {
			log.Printf("[server] forced close failed: %v", closeErr)
		}
	}
}

// openStorage opens the preferences database. The server runs without
// persistence if it cannot be opened.
func openStorage() *storage.Storage {
	if *noDB {
		return nil
	}

	var (
		store *storage.Storage
		err   error
	)
	if *dbDir != "" {
		store, err = storage.Open(*dbDir)
	} else {
		store, err = storage.NewStorage()
	}
	if err != nil {
		log.Printf("Warning: Failed to initialize storage: %v", err)
		return nil
	}
	return store
}
