// Package logger provides a thin wrapper around zerolog.Logger.
//
// The TUI owns the terminal, so logs go to a file under the XDG data
// directory instead of stderr. The Logger type embeds zerolog.Logger, so
// all standard zerolog methods are available directly.
package logger

import (
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

// Logger is a thin wrapper around zerolog.Logger.
type Logger struct {
	zerolog.Logger
}

// New constructs a *Logger writing JSON lines to path, creating parent
// directories as needed. If the file cannot be opened the logger
// discards output.
func New(path string) *Logger {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return Nop()
	}
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return Nop()
	}
	l := zerolog.New(file).With().Timestamp().Logger()
	return &Logger{l}
}

// Nop returns a *Logger that discards all output. Intended for tests.
func Nop() *Logger {
	return &Logger{zerolog.Nop()}
}
