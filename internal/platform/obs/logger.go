package obs

import (
	"context"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

type ctxKey string

const RequestIDKey ctxKey = "req_id"

// NewLogger builds the process logger. format "console" gives human-readable
// output for local runs; anything else writes JSON lines.
func NewLogger(level, format string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}

	var w io.Writer = os.Stderr
	if format == "console" {
		w = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	}

	return zerolog.New(w).Level(lvl).With().Timestamp().Logger()
}

// WithRequestID stores the request id and a logger tagged with it on ctx.
func WithRequestID(ctx context.Context, base zerolog.Logger, reqID string) context.Context {
	ctx = context.WithValue(ctx, RequestIDKey, reqID)
	l := base.With().Str("req_id", reqID).Logger()
	return l.WithContext(ctx)
}

// RequestID returns the request id stored on ctx, or "".
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(RequestIDKey).(string)
	return id
}
