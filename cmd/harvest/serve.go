package main

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/startuppulse/harvest"
)

// Run executes the serve command.
func (c *ServeCmd) Run(deps *Dependencies) error {
	srv := &http.Server{
		Addr:    c.Addr,
		Handler: Routes(deps),
	}

	// Shut the server down when the command context ends.
	go func() {
		<-deps.Ctx.Done()
		_ = srv.Shutdown(deps.Ctx)
	}()

	fmt.Fprintf(deps.Stdout, "Listening on %s\n", c.Addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Routes builds the HTTP trigger API.
func Routes(deps *Dependencies) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	mux.HandleFunc("GET /api/reports", func(w http.ResponseWriter, r *http.Request) {
		reports, err := deps.Reports.FindReports(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}
		if reports == nil {
			reports = []*harvest.Report{}
		}
		writeJSON(w, http.StatusOK, reports)
	})
	mux.HandleFunc("POST /api/generate-report", func(w http.ResponseWriter, r *http.Request) {
		if err := refreshStore(deps); err != nil {
			writeError(w, err)
			return
		}
		report, err := deps.Reporter.GenerateReport(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, report)
	})
	return mux
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps domain error codes to HTTP status codes.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch harvest.ErrorCode(err) {
	case harvest.EINVALID:
		status = http.StatusBadRequest
	case harvest.ENOTFOUND:
		status = http.StatusNotFound
	case harvest.ECONFLICT:
		status = http.StatusConflict
	case harvest.EUNAVAILABLE:
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, map[string]string{"error": harvest.ErrorMessage(err)})
}
