// Package logger provides verbose logging for the flattree CLI.
// When verbose mode is enabled via the --verbose flag, materialization
// progress (skipped records, orphans, strategy timings) is written to
// stderr. Output is line oriented "[LEVEL] message" text by default, or
// one zerolog JSON object per line when JSON output is selected.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/rs/zerolog"
)

var (
	mu       sync.RWMutex
	verbose  bool
	jsonMode bool
	output   io.Writer = os.Stderr
	log                = newLogger(output, false)
)

func newLogger(w io.Writer, asJSON bool) zerolog.Logger {
	w = zerolog.SyncWriter(w)
	if asJSON {
		return zerolog.New(w).With().Timestamp().Logger()
	}
	return zerolog.New(zerolog.ConsoleWriter{
		Out:        w,
		NoColor:    true,
		PartsOrder: []string{zerolog.LevelFieldName, zerolog.MessageFieldName},
		FormatLevel: func(i any) string {
			level, _ := i.(string)
			return "[" + strings.ToUpper(level) + "]"
		},
	})
}

// SetVerbose enables or disables verbose logging.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = v
}

// IsVerbose returns true if verbose mode is enabled.
func IsVerbose() bool {
	mu.RLock()
	defer mu.RUnlock()
	return verbose
}

// SetOutput sets the output writer for verbose logs.
// Defaults to os.Stderr. Useful for testing.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
	log = newLogger(output, jsonMode)
}

// SetJSON switches between text lines and JSON objects.
func SetJSON(enabled bool) {
	mu.Lock()
	defer mu.Unlock()
	jsonMode = enabled
	log = newLogger(output, jsonMode)
}

// current returns the logger when verbose mode is on.
func current() (zerolog.Logger, bool) {
	mu.RLock()
	defer mu.RUnlock()
	return log, verbose
}

// Debug prints a message if verbose mode is enabled.
func Debug(format string, args ...any) {
	if l, ok := current(); ok {
		l.Debug().Msgf(format, args...)
	}
}

// Section prints a section header if verbose mode is enabled.
func Section(name string) {
	mu.RLock()
	defer mu.RUnlock()
	if !verbose {
		return
	}
	if jsonMode {
		log.Info().Str("section", name).Send()
		return
	}
	fmt.Fprintf(output, "\n=== %s ===\n", name)
}

// Info prints an informational message if verbose mode is enabled.
func Info(format string, args ...any) {
	if l, ok := current(); ok {
		l.Info().Msgf(format, args...)
	}
}

// Warn prints a warning message if verbose mode is enabled.
func Warn(format string, args ...any) {
	if l, ok := current(); ok {
		l.Warn().Msgf(format, args...)
	}
}
