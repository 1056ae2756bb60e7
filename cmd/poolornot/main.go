package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/domino14/poolornot/config"
	"github.com/domino14/poolornot/experiment"
)

// Conventional "bad usage" exit code (sysexits EX_USAGE).
const exitUsage = 64

func usage() {
	fmt.Printf("Usage: %s [num_datasets]\n", os.Args[0])
	os.Exit(exitUsage)
}

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	if os.Getenv("POOLORNOT_DEBUG") != "" {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("bad configuration")
	}

	args := os.Args[1:]
	switch len(args) {
	case 0:
	case 1:
		n, err := strconv.Atoi(args[0])
		if err != nil || n <= 0 {
			usage()
		}
		cfg.Trials = n
	default:
		usage()
	}

	runner, err := experiment.NewRunner(cfg, os.Stdout)
	if err != nil {
		log.Fatal().Err(err).Msg("could not set up experiment")
	}
	runner.Run()
}
