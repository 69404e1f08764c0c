package routes

import (
	"net/http"

	"github.com/LepistaBioinformatics/classeq2/database"
	"github.com/LepistaBioinformatics/classeq2/joblog"
	"github.com/LepistaBioinformatics/classeq2/placer"
	"github.com/LepistaBioinformatics/classeq2/seq"
	"github.com/LepistaBioinformatics/classeq2/util/httputil"
	"github.com/LepistaBioinformatics/classeq2/util/log"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
)

// PlaceResponse is the body returned by the place endpoint.
type PlaceResponse struct {
	JobID   string               `json:"jobId"`
	Results []placer.QueryResult `json:"results"`
}

func newPlaceHandler(db *database.Database, jobs joblog.Log, cfg placer.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		records, err := seq.ReadAll(r.Body)
		if err != nil {
			httputil.BadRequest(ctx, w, "malformed fasta body: %s", err)
			return
		}
		if len(records) == 0 {
			httputil.BadRequest(ctx, w, "no query records in body")
			return
		}
		jobID := uuid.New().String()
		ctx = log.AddTags(ctx, "job_id", jobID)

		results, err := placer.PlaceAll(ctx, db, records, cfg)
		if err != nil {
			httputil.InternalServerError(ctx, w, "placement failed: %s", err)
			return
		}
		for _, result := range results {
			status := string(result.Placement.Status)
			if result.Error != "" {
				status = "Error"
			}
			if err := jobs.Record(ctx, jobID, result.Query, status); err != nil {
				log.Warnw(ctx, "failed to record job", "error", err)
			}
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(PlaceResponse{JobID: jobID, Results: results}); err != nil {
			log.Errorw(ctx, "error writing response", "error", err)
		}
	}
}
