// Package middleware carries the HTTP middleware shared by every module.
package middleware

import (
	"net/http"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

// RequestLogger emits one structured log line per request, levelled by
// status class: 5xx logs as error, 4xx as warn, everything else as info.
func RequestLogger(log zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)

			var evt *zerolog.Event
			switch {
			case ww.Status() >= http.StatusInternalServerError:
				evt = log.Error()
			case ww.Status() >= http.StatusBadRequest:
				evt = log.Warn()
			default:
				evt = log.Info()
			}
			evt.
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", ww.Status()).
				Int("bytes", ww.BytesWritten()).
				Dur("duration", time.Since(start)).
				Str("request_id", chimw.GetReqID(r.Context())).
				Msg("request")
		})
	}
}
