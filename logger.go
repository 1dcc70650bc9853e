// logger.go
//
// Package sub-logger; binaries configure the zerolog global level
// and output.

package lasermaze

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// pkgLog carries the module field on every log line emitted from
// this package
var pkgLog zerolog.Logger = log.With().Str("module", "lasermaze").Logger()
