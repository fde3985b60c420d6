package obs

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestTimeLogsWithRequestID(t *testing.T) {
	var buf bytes.Buffer
	base := zerolog.New(&buf).Level(zerolog.DebugLevel)
	ctx := WithRequestID(context.Background(), base, "abc-123")

	require.Equal(t, "abc-123", RequestID(ctx))

	err := errors.New("boom")
	Time(ctx, "engine.Recalculate")(&err)

	out := buf.String()
	require.Contains(t, out, `"req_id":"abc-123"`)
	require.Contains(t, out, `"op":"engine.Recalculate"`)
	require.Contains(t, out, `"error":"boom"`)
}

func TestNewLoggerDefaultsToInfo(t *testing.T) {
	l := NewLogger("not-a-level", "json")
	require.Equal(t, zerolog.InfoLevel, l.GetLevel())

	l = NewLogger("debug", "console")
	require.Equal(t, zerolog.DebugLevel, l.GetLevel())
}
