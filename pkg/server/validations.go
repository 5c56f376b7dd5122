package server

import (
	"fmt"
	"log/slog"
	"net/http"

	tverrors "github.com/tablevet/tablevet/pkg/errors"
	"github.com/tablevet/tablevet/pkg/rowsource"
	"github.com/tablevet/tablevet/pkg/serializer"
)

// multipartMemoryBytes is the in-memory threshold before an upload spools
// to a temp file.
const multipartMemoryBytes = 10 << 20

// handleValidations handles POST /v1/validations: a multipart form with a
// "suite" field naming the suite and a "data" file holding the CSV. The
// response is the persisted report; a report whose rules failed is still a
// 200, mirroring the CLI's exit semantics.
func (s *Server) handleValidations(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		WriteError(w, r, http.StatusMethodNotAllowed, tverrors.ErrCodeMethodNotAllowed,
			fmt.Sprintf("method %s not allowed", r.Method), false, nil)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)
	if err := r.ParseMultipartForm(multipartMemoryBytes); err != nil {
		WriteError(w, r, http.StatusBadRequest, tverrors.ErrCodeInvalidRequest,
			fmt.Sprintf("invalid multipart request: %v", err), false, nil)
		return
	}
	defer func() {
		if err := r.MultipartForm.RemoveAll(); err != nil {
			slog.Warn("failed to clean up multipart temp files", "error", err)
		}
	}()

	suiteName := r.FormValue("suite")
	if suiteName == "" {
		WriteError(w, r, http.StatusBadRequest, tverrors.ErrCodeInvalidRequest,
			`form field "suite" is required`, false, nil)
		return
	}

	file, fh, err := r.FormFile("data")
	if err != nil {
		WriteError(w, r, http.StatusBadRequest, tverrors.ErrCodeInvalidRequest,
			`form file "data" is required`, false, nil)
		return
	}
	defer file.Close()

	src, err := rowsource.New(file)
	if err != nil {
		WriteErrorFromErr(w, r, err, "unreadable data file", map[string]any{"file": fh.Filename})
		return
	}
	defer src.Close()

	rep, err := s.engine.ValidateSource(r.Context(), suiteName, fh.Filename, src)
	if err != nil {
		WriteErrorFromErr(w, r, err, "validation run failed", map[string]any{"file": fh.Filename})
		return
	}

	w.Header().Set("Cache-Control", "no-store")
	serializer.RespondJSON(w, http.StatusOK, rep)
}
