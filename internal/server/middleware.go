package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"

	"github.com/EkalavyanS/Flashy/internal/llm"
	"github.com/EkalavyanS/Flashy/internal/logging"
)

// requestLogger stores the server logger in the request context, tags
// LLM calls with the request ID and logs one line per request once the
// response is written.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		ctx := logging.NewContext(r.Context(), s.log)
		ctx = llm.WithSession(ctx, middleware.GetReqID(ctx))

		next.ServeHTTP(ww, r.WithContext(ctx))

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		entry := logging.WithContext(ctx).WithFields(logrus.Fields{
			"method":   r.Method,
			"path":     r.URL.Path,
			"status":   status,
			"bytes":    ww.BytesWritten(),
			"duration": time.Since(start).Round(time.Millisecond).String(),
		})
		if status >= http.StatusInternalServerError {
			entry.Warn("request failed")
			return
		}
		entry.Info("request")
	})
}
