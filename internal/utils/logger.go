package utils

import (
	"context"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// NewLogger builds the process logger: human readable console output while
// developing, JSON lines otherwise.
func NewLogger(development bool) zerolog.Logger {
	var out io.Writer = os.Stdout
	level := zerolog.InfoLevel
	if development {
		out = zerolog.NewConsoleWriter(func(w *zerolog.ConsoleWriter) {
			w.Out = os.Stdout
			w.TimeFormat = time.RFC3339
		})
		level = zerolog.DebugLevel
	}
	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}

// LogEvent writes a standardized line with module/action using the request
// scoped logger stored in ctx (request_id is already attached there).
// Avoid logging sensitive payload; message should be summarized.
func LogEvent(ctx context.Context, module, action, message string) {
	zerolog.Ctx(ctx).Info().
		Str("module", strings.ToLower(module)).
		Str("action", action).
		Msg(message)
}
