// chessvariant-cli plays the Computer from a terminal. Commands are read from
// stdin and board events are written to stdout; type "help" for the list.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"runtime/pprof"
	"syscall"

	"github.com/hailam/chessvariant/internal/console"
	"github.com/hailam/chessvariant/internal/engine"
	"github.com/hailam/chessvariant/internal/storage"
)

var (
	depth      = flag.Int("depth", engine.DefaultDepth, "search depth (1-5)")
	odds       = flag.Float64("odds", engine.DefaultSwitchProbability, "probability of switching to an equally scored move")
	seed       = flag.Int64("seed", 0, "tie-break seed (0 = time based)")
	dbDir      = flag.String("db", "", "database directory (default: platform data dir)")
	noDB       = flag.Bool("nodb", false, "do not persist preferences and statistics")
	cpuprofile = flag.String("cpuprofile", "", "write cpu profile to file")
)

func main() {
	flag.Parse()

	if *cpuprofile != "" {
		f, err := os.Create(*cpuprofile)
		if err != nil {
			log.Fatal("could not create CPU profile: ", err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatal("could not start CPU profile: ", err)
		}
		defer pprof.StopCPUProfile()
		log.Printf("CPU profiling enabled, writing to %s", *cpuprofile)
	}

	eng := engine.NewEngine()
	if *seed != 0 {
		eng.Seed(*seed)
	}

	store := openStorage()
	if store != nil {
		defer store.Close()
	}

	c := console.New(eng, store, os.Stdout)

	// Flags given on the command line override stored preferences.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "depth":
			c.Game().SetSearchDepth(*depth)
		case "odds":
			c.Game().SetSwitchProbability(*odds)
		}
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := c.Run(ctx, os.Stdin); err != nil && ctx.Err() == nil {
		log.Printf("Error: %v", err)
	}
}

// openStorage opens the preferences database. Play continues without
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
