package gen

import (
	"io"
	"log/slog"
)

// Logger receives generation diagnostics. It discards everything until a
// caller installs its own handler.
var Logger = slog.New(slog.NewTextHandler(io.Discard, nil))

// ListenGen enables a trace of every queued and applied step
var ListenGen bool

// SetLogger replaces Logger; nil restores the discarding default
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	Logger = l
}
