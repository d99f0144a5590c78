package main

import (
	"flag"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"neonpad/internal/store"
	"neonpad/internal/ui"
)

func main() {
	var (
		dataDir = flag.String("data", defaultDataDir(), "directory for the database and imported media")
		debug   = flag.Bool("debug", false, "enable debug logging")
	)
	flag.Parse()

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		With().Timestamp().Logger()
	if !*debug {
		log = log.Level(zerolog.InfoLevel)
	}

	if err := os.MkdirAll(*dataDir, 0o755); err != nil {
		log.Fatal().Err(err).Str("dir", *dataDir).Msg("create data dir")
	}

	db, err := store.Open(filepath.Join(*dataDir, "neonpad.db"), *dataDir, log)
	if err != nil {
		log.Fatal().Err(err).Msg("open store")
	}
	defer db.Close()

	log.Info().Str("data", *dataDir).Msg("neonpad starting")
	ui.RunApp(db, log)
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "neonpad-data"
	}
	return filepath.Join(home, ".neonpad")
}
