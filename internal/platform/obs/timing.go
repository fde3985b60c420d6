package obs

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// Time logs the duration of an operation when the returned func is deferred.
// The logger is taken from ctx (see WithRequestID) so lines carry the req_id.
func Time(ctx context.Context, name string) func(errp *error) {
	start := time.Now()
	logger := zerolog.Ctx(ctx)

	return func(errp *error) {
		dur := time.Since(start)

		if errp != nil && *errp != nil {
			logger.Warn().Str("op", name).Int64("dur_ms", dur.Milliseconds()).Err(*errp).Msg("op failed")
			return
		}
		logger.Debug().Str("op", name).Int64("dur_ms", dur.Milliseconds()).Msg("op done")
	}
}
