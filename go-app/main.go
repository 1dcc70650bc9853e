// go-app/main.go
// App Engine main package for the lasermaze solver service

package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"runtime"
	"strconv"

	lasermaze "github.com/beamtrace/lasermaze"
	"github.com/bytedance/sonic"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// Bearer authorization token, if any
var ACCESS_KEY string

// Corresponding Authorization header (or "" if no auth required)
var AUTH_HEADER string

// Allowed access control (CORS) origins
var ALLOWED_ORIGINS string = "*" // Default to all origins allowed

func validate(w http.ResponseWriter, r *http.Request, req any) bool {
	// Set CORS headers
	header := w.Header()
	header.Set("Access-Control-Allow-Origin", ALLOWED_ORIGINS)
	header.Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	header.Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

	// Handle preflight OPTIONS request
	if r.Method == "OPTIONS" {
		// Returning false simply causes the handler to return the response headers
		return false
	}

	// We only accept POST requests
	if r.Method != "POST" {
		http.Error(w, "Invalid request method", http.StatusMethodNotAllowed)
		return false
	}
	// Check for a bearer authorization token,
	// which must match the environment variable
	// ACCESS_KEY, if present
	if AUTH_HEADER != "" {
		authHeader := r.Header.Get("Authorization")
		if authHeader != AUTH_HEADER {
			http.Error(w,
				fmt.Sprintf(
					"Authorization header mismatch: got '%s'",
					authHeader,
				),
				http.StatusUnauthorized,
			)
			return false
		}
	}
	// Cap request bodies at 1 MiB; puzzles are a few KiB at most
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, 1<<20))
	if err == nil {
		err = sonic.Unmarshal(body, req)
	}
	if err != nil {
		// Not valid JSON
		http.Error(w, err.Error(), http.StatusBadRequest)
		return false
	}
	return true
}

func warmupHandler(w http.ResponseWriter, r *http.Request) {
	// No concrete action required
	log.Info().Msg("Warmup request received")
}

func main() {
	// Local development reads its environment from a .env file;
	// App Engine injects the environment directly
	_ = godotenv.Load()
	log.Info().Str("go", runtime.Version()).Msg("Solver service starting")

	// Figure out the authorization header, if required
	ACCESS_KEY = os.Getenv("ACCESS_KEY")
	if ACCESS_KEY != "" {
		AUTH_HEADER = "Bearer " + ACCESS_KEY
	}

	// Establish the solver worker count, defaulting to one per CPU
	workers := 0
	if w := os.Getenv("SOLVER_WORKERS"); w != "" {
		if n, err := strconv.Atoi(w); err == nil {
			workers = n
		} else {
			log.Warn().Str("SOLVER_WORKERS", w).Msg("Invalid worker count, using one per CPU")
		}
	}

	// Connect to Datastore if a project is configured
	var store *lasermaze.PuzzleStore
	if projectID := os.Getenv("GOOGLE_CLOUD_PROJECT"); projectID != "" {
		var err error
		store, err = lasermaze.NewPuzzleStore(context.Background(), projectID)
		if err != nil {
			log.Fatal().Err(err).Msg("Unable to connect to Datastore")
		}
		defer store.Close()
		log.Info().Str("project", projectID).Msg("Persisting puzzles to Datastore")
	} else {
		log.Info().Msg("No GOOGLE_CLOUD_PROJECT specified, persistence disabled")
	}

	server := lasermaze.NewServer(workers, store)
	solveHandler := func(w http.ResponseWriter, r *http.Request) {
		var req lasermaze.SolveRequest
		if !validate(w, r, &req) {
			return
		}
		server.HandleSolve(w, req)
	}

	// Set up a dummy warmup handler
	http.HandleFunc("/_ah/warmup", warmupHandler)
	// Set up the actual service handler
	http.HandleFunc("/solve", solveHandler)

	// Establish the port number to listen on, defaulting to 8080
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Info().Str("port", port).Msg("Listening")

	// Establish allowed CORS origins
	origins := os.Getenv("ALLOWED_ORIGINS")
	if origins != "" {
		log.Info().Str("origins", origins).Msg("Allowed CORS origins")
		ALLOWED_ORIGINS = origins
	} else {
		log.Info().Msg("No ALLOWED_ORIGINS specified, allowing all")
	}

	// Start the server loop
	if err := http.ListenAndServe(":"+port, nil); err != nil {
		log.Fatal().Err(err).Msg("Server terminated")
	}
}
