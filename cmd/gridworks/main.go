// Command gridworks solves the grid and machine puzzles from an input file.
//
//	gridworks [--config FILE] [--log-level LEVEL] warehouse [--wide] [--dump FILE] [PATH]
//	gridworks maze [--dump FILE] [PATH]
//	gridworks computer [--quine] [PATH]
//	gridworks robots [--seconds N] [--show] [PATH]
//
// PATH defaults to input.txt. Answers go to stdout, logs to stderr.
package main

import (
	"context"
	"os"

	"github.com/rs/zerolog/log"
)

func main() {
	if err := newApp(os.Stdout, os.Stderr).Run(context.Background(), os.Args); err != nil {
		log.Fatal().Err(err).Msg("gridworks failed")
	}
}
