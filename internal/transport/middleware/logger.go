package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/myenglish-study/pkg/ctxutil"
)

// requestLog collects fields set by inner middleware, which only see a
// derived request context.
type requestLog struct {
	userID uuid.UUID
}

type requestLogKey struct{}

// noteUser records the authenticated user on the request log line, if any.
func noteUser(ctx context.Context, id uuid.UUID) {
	if rl, ok := ctx.Value(requestLogKey{}).(*requestLog); ok {
		rl.userID = id
	}
}

// Logger logs one "http.request" line per request. Server errors are logged
// at Error, client errors at Warn.
func Logger(logger *slog.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sw := newStatusWriter(w)
			rl := &requestLog{}

			next.ServeHTTP(sw, r.WithContext(context.WithValue(r.Context(), requestLogKey{}, rl)))

			args := []any{
				"method", r.Method,
				"path", r.URL.Path,
				"status", sw.status,
				"bytes", sw.bytes,
				"duration", time.Since(start),
			}
			args = append(args, ctxutil.LogAttrs(r.Context())...)
			if rl.userID != uuid.Nil {
				args = append(args, "user_id", rl.userID.String())
			}

			level := slog.LevelInfo
			switch {
			case sw.status >= 500:
				level = slog.LevelError
			case sw.status >= 400:
				level = slog.LevelWarn
			}
			logger.Log(r.Context(), level, "http.request", args...)
		})
	}
}
