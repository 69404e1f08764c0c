package routes

import (
	"net/http"
	"strconv"

	"github.com/LepistaBioinformatics/classeq2/joblog"
	"github.com/LepistaBioinformatics/classeq2/util/httputil"
	"github.com/LepistaBioinformatics/classeq2/util/log"
	"github.com/goccy/go-json"
)

const defaultJobsLimit = 100

func newJobsHandler(jobs joblog.Log) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		limit := defaultJobsLimit
		if raw := r.URL.Query().Get("limit"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil || parsed < 1 {
				httputil.BadRequest(ctx, w, "malformed limit: %s", raw)
				return
			}
			limit = parsed
		}
		entries, err := jobs.List(ctx, limit)
		if err != nil {
			httputil.InternalServerError(ctx, w, "failed to list jobs: %s", err)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(entries); err != nil {
			log.Errorw(ctx, "error writing response", "error", err)
		}
	}
}
