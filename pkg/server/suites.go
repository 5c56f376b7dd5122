package server

import (
	"fmt"
	"net/http"
	"strings"

	tverrors "github.com/tablevet/tablevet/pkg/errors"
	"github.com/tablevet/tablevet/pkg/serializer"
	"github.com/tablevet/tablevet/pkg/suite"
)

// maxSuiteBodyBytes caps a posted suite document. Suites are small; a
// megabyte is already hundreds of rules.
const maxSuiteBodyBytes = 1 << 20

// handleSuites handles the /v1/suites collection: GET lists, POST creates
// or replaces.
func (s *Server) handleSuites(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.listSuites(w, r)
	case http.MethodPost:
		s.saveSuite(w, r, "")
	default:
		w.Header().Set("Allow", "GET, POST")
		WriteError(w, r, http.StatusMethodNotAllowed, tverrors.ErrCodeMethodNotAllowed,
			fmt.Sprintf("method %s not allowed", r.Method), false, nil)
	}
}

// handleSuiteByName handles /v1/suites/{name}: GET, PUT (create or
// replace), DELETE.
func (s *Server) handleSuiteByName(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimPrefix(r.URL.Path, "/v1/suites/")
	if name == "" || strings.Contains(name, "/") {
		WriteError(w, r, http.StatusNotFound, tverrors.ErrCodeNotFound,
			fmt.Sprintf("no such route %q", r.URL.Path), false, nil)
		return
	}

	switch r.Method {
	case http.MethodGet:
		s.getSuite(w, r, name)
	case http.MethodPut:
		s.saveSuite(w, r, name)
	case http.MethodDelete:
		s.deleteSuite(w, r, name)
	default:
		w.Header().Set("Allow", "GET, PUT, DELETE")
		WriteError(w, r, http.StatusMethodNotAllowed, tverrors.ErrCodeMethodNotAllowed,
			fmt.Sprintf("method %s not allowed", r.Method), false, nil)
	}
}

func (s *Server) listSuites(w http.ResponseWriter, r *http.Request) {
	suites, err := s.engine.Store().ListSuites(r.Context())
	if err != nil {
		WriteErrorFromErr(w, r, err, "failed to list suites", nil)
		return
	}

	serializer.RespondJSON(w, http.StatusOK, SuiteListResponse{
		Suites: suites,
		Count:  len(suites),
	})
}

func (s *Server) getSuite(w http.ResponseWriter, r *http.Request, name string) {
	st, err := s.engine.Store().GetSuite(r.Context(), name)
	if err != nil {
		WriteErrorFromErr(w, r, err, "failed to load suite", nil)
		return
	}

	w.Header().Set("Cache-Control", fmt.Sprintf("public, max-age=%d", s.cfg.CacheMaxAge))
	serializer.RespondJSON(w, http.StatusOK, st)
}

// saveSuite decodes a suite document and creates or replaces it. pathName
// is empty for collection POSTs; for PUTs it pins the suite name and the
// body may omit it.
func (s *Server) saveSuite(w http.ResponseWriter, r *http.Request, pathName string) {
	var posted suite.Suite
	if err := serializer.DecodeJSONBody(w, r, &posted, maxSuiteBodyBytes); err != nil {
		WriteError(w, r, http.StatusBadRequest, tverrors.ErrCodeInvalidRequest,
			err.Error(), false, nil)
		return
	}

	if pathName != "" {
		if posted.Name != "" && posted.Name != pathName {
			WriteError(w, r, http.StatusBadRequest, tverrors.ErrCodeInvalidRequest,
				fmt.Sprintf("suite name %q in body does not match %q in path", posted.Name, pathName),
				false, nil)
			return
		}
		posted.Name = pathName
	}

	built, err := suite.BuildSuite(r.Context(), posted.Name, posted.Rules)
	if err != nil {
		WriteErrorFromErr(w, r, err, "invalid suite document", nil)
		return
	}

	if err := s.engine.CreateOrReplaceSuite(r.Context(), built); err != nil {
		WriteErrorFromErr(w, r, err, "failed to save suite", nil)
		return
	}

	serializer.RespondJSON(w, http.StatusOK, built)
}

func (s *Server) deleteSuite(w http.ResponseWriter, r *http.Request, name string) {
	if err := s.engine.Store().DeleteSuite(r.Context(), name); err != nil {
		WriteErrorFromErr(w, r, err, "failed to delete suite", nil)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
