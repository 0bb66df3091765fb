// Package logger holds the process-wide structured logger. Security events go
// through pkg/security instead; this one is for application flow.
package logger

import (
	"log/slog"
	"os"
)

var Log *slog.Logger

// Init wires JSON logging to stdout. Call once before serving.
func Init() {
	Log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
}
