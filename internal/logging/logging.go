// Package logging configures the zerolog diagnostics sink shared by the
// snapshot, aerodynamic model and predictor.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New returns a console-writer logger at the given level. Unknown level
// strings fall back to info.
func New(w io.Writer, level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}

	console := zerolog.ConsoleWriter{Out: w, TimeFormat: time.TimeOnly}
	return zerolog.New(console).Level(lvl).With().Timestamp().Logger()
}

// NewStderr is the common CLI setup.
func NewStderr(level string) zerolog.Logger {
	return New(os.Stderr, level)
}
