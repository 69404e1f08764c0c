package routes

import (
	"net/http"

	"github.com/LepistaBioinformatics/classeq2/util/log"
	"github.com/goccy/go-json"
)

func newHealthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(map[string]string{"status": "ok"}); err != nil {
			log.Errorw(r.Context(), "error writing response", "error", err)
		}
	}
}
