package cookiekit

import (
	"io"
	"log/slog"
	"os"
	"sync/atomic"
)

const (
	FormatText = "text"
	FormatJSON = "json"
)

var logger atomic.Pointer[slog.Logger]

func init() {
	logger.Store(NewLogger(FormatText, slog.LevelInfo, os.Stderr))
}

// NewLogger builds a slog logger tagged with the package name. A nil writer means stderr.
func NewLogger(format string, level slog.Level, w io.Writer) *slog.Logger {
	if w == nil {
		w = os.Stderr
	}
	opts := &slog.HandlerOptions{Level: level}
	var h slog.Handler
	if format == FormatJSON {
		h = slog.NewJSONHandler(w, opts)
	} else {
		h = slog.NewTextHandler(w, opts)
	}
	return slog.New(h).With(slog.String("component", "cookiekit"))
}

// SetLogger replaces the package logger. Nil is ignored.
func SetLogger(l *slog.Logger) {
	if l != nil {
		logger.Store(l)
	}
}

func log() *slog.Logger {
	return logger.Load()
}
