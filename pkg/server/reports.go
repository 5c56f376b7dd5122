package server

import (
	"fmt"
	"net/http"
	"strings"

	tverrors "github.com/tablevet/tablevet/pkg/errors"
	"github.com/tablevet/tablevet/pkg/report"
	"github.com/tablevet/tablevet/pkg/serializer"
)

// handleReports handles GET /v1/reports, newest first, optionally filtered
// by ?suite=name.
func (s *Server) handleReports(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		WriteError(w, r, http.StatusMethodNotAllowed, tverrors.ErrCodeMethodNotAllowed,
			fmt.Sprintf("method %s not allowed", r.Method), false, nil)
		return
	}

	reports, err := s.engine.Store().ListReports(r.Context())
	if err != nil {
		WriteErrorFromErr(w, r, err, "failed to list reports", nil)
		return
	}

	if suiteName := r.URL.Query().Get("suite"); suiteName != "" {
		filtered := make([]*report.Report, 0, len(reports))
		for _, rep := range reports {
			if rep.SuiteName == suiteName {
				filtered = append(filtered, rep)
			}
		}
		reports = filtered
	}

	serializer.RespondJSON(w, http.StatusOK, ReportListResponse{
		Reports: reports,
		Count:   len(reports),
	})
}

// handleReportByID handles GET /v1/reports/{id}.
func (s *Server) handleReportByID(w http.ResponseWriter, r *http.Request) {
	runID := strings.TrimPrefix(r.URL.Path, "/v1/reports/")
	if runID == "" || strings.Contains(runID, "/") {
		WriteError(w, r, http.StatusNotFound, tverrors.ErrCodeNotFound,
			fmt.Sprintf("no such route %q", r.URL.Path), false, nil)
		return
	}

	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		WriteError(w, r, http.StatusMethodNotAllowed, tverrors.ErrCodeMethodNotAllowed,
			fmt.Sprintf("method %s not allowed", r.Method), false, nil)
		return
	}

	rep, err := s.engine.Store().GetReport(r.Context(), runID)
	if err != nil {
		WriteErrorFromErr(w, r, err, "failed to load report", nil)
		return
	}

	// Reports are immutable once written.
	w.Header().Set("Cache-Control", fmt.Sprintf("public, max-age=%d", s.cfg.CacheMaxAge))
	serializer.RespondJSON(w, http.StatusOK, rep)
}
