package mw

import (
	"net/http"

	"github.com/LepistaBioinformatics/classeq2/util/log"
	"github.com/google/uuid"
)

/*
mw contains http middlewares.
*/

////////////////////////////////////////////////////////////////////////////////

// WithRequestID is a middleware that adds a request ID to the context of each
// request.
func WithRequestID(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		id := uuid.New()
		ctx = log.AddTags(ctx, "request_id", id.String())
		h.ServeHTTP(w, r.WithContext(ctx))
	})
}

// WithRequestLogging is a middleware that logs method and path for each
// request.
func WithRequestLogging(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.Debugw(r.Context(), "request", "method", r.Method, "path", r.URL.Path)
		h.ServeHTTP(w, r)
	})
}
