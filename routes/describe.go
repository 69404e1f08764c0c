package routes

import (
	"net/http"

	"github.com/LepistaBioinformatics/classeq2/database"
	"github.com/LepistaBioinformatics/classeq2/util/log"
	"github.com/goccy/go-json"
)

func newDescribeHandler(db *database.Database) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(db.Describe()); err != nil {
			log.Errorw(r.Context(), "error writing response", "error", err)
		}
	}
}
