// main.go

// Command line front end for the lasermaze solver

package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	lasermaze "github.com/beamtrace/lasermaze"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func loadPuzzle(file, challenge string) (*lasermaze.Puzzle, error) {
	if file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return nil, err
		}
		return lasermaze.ParsePuzzle(data)
	}
	if p := lasermaze.Challenge(challenge); p != nil {
		return p, nil
	}
	return nil, fmt.Errorf("unknown challenge '%v'; specify one of %v", challenge, lasermaze.ChallengeNames)
}

func main() {
	file := flag.String("f", "", "JSON file containing the puzzle to solve")
	challenge := flag.String("c", "bonus-1", "Built-in challenge to solve if no file is given")
	workers := flag.Int("n", 1, "Number of solver workers (0 = one per CPU)")
	quiet := flag.Bool("q", false, "Suppress solver diagnostics")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})
	if *quiet {
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	p, err := loadPuzzle(*file, *challenge)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(2)
	}

	sol, err := lasermaze.SolvePuzzle(p, *workers)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid puzzle: %v\n", err)
		os.Exit(2)
	}
	if !sol.Solved {
		fmt.Printf("Unsolvable (%v nodes searched in %v ms).\n", sol.Nodes, sol.ElapsedMS)
		os.Exit(1)
	}
	fmt.Printf("Solved in %v ms after searching %v nodes:\n\n%v\n", sol.ElapsedMS, sol.Nodes, sol.Grid)
}
