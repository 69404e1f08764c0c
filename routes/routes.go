package routes

import (
	"github.com/LepistaBioinformatics/classeq2/database"
	"github.com/LepistaBioinformatics/classeq2/joblog"
	"github.com/LepistaBioinformatics/classeq2/placer"
	"github.com/LepistaBioinformatics/classeq2/util/mw"
	"github.com/gorilla/mux"
)

/*
HTTP routes for the placement job server. The database is loaded once and
shared read-only by every handler; the job log receives one record per
placed query.
*/

////////////////////////////////////////////////////////////////////////////////

// MakeRoutes builds the router over a loaded database.
func MakeRoutes(db *database.Database, jobs joblog.Log, cfg placer.Config) *mux.Router {
	r := mux.NewRouter()
	r.Use(mw.WithRequestID, mw.WithRequestLogging)
	r.HandleFunc("/place", newPlaceHandler(db, jobs, cfg)).Methods("POST")
	r.HandleFunc("/db", newDescribeHandler(db)).Methods("GET")
	r.HandleFunc("/jobs", newJobsHandler(jobs)).Methods("GET")
	r.HandleFunc("/health", newHealthHandler()).Methods("GET")
	return r
}
