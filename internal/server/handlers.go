package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/claude/workoutsync/internal/ingest"
	"github.com/claude/workoutsync/internal/units"
	"github.com/claude/workoutsync/internal/upload"
	"github.com/claude/workoutsync/internal/workout"
)

const maxRequestBytes = 1 << 20

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleCompile(w http.ResponseWriter, r *http.Request) {
	req, ok := s.readRequest(w, r)
	if !ok {
		return
	}
	d, err := req.ResolveDiscipline(s.training)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	wk, err := workout.NewCompiler(d).Compile(req.Workout, nil)
	if err != nil {
		s.writeCompileError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, upload.ToPayload(wk))
}

func (s *Server) handleLoad(w http.ResponseWriter, r *http.Request) {
	req, ok := s.readRequest(w, r)
	if !ok {
		return
	}
	ftp, err := req.ReferencePower(s.training)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	load, err := workout.ComputeLoad(req.Workout.Steps, ftp)
	if err != nil {
		s.writeCompileError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, load)
}

func (s *Server) readRequest(w http.ResponseWriter, r *http.Request) (*ingest.Request, bool) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxRequestBytes))
	if err != nil {
		writeJSON(w, http.StatusRequestEntityTooLarge, map[string]string{"error": err.Error()})
		return nil, false
	}
	req, err := s.loader.ParseRequest(body)
	if err != nil {
		resp := map[string]any{"error": err.Error()}
		var verr *ingest.ValidationError
		if errors.As(err, &verr) {
			resp["violations"] = verr.Violations
		}
		writeJSON(w, http.StatusBadRequest, resp)
		return nil, false
	}
	return req, true
}

// writeCompileError reports malformed step literals as 422, anything else
// as a server error.
func (s *Server) writeCompileError(w http.ResponseWriter, err error) {
	var perr *units.ParseError
	if errors.As(err, &perr) {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": err.Error()})
		return
	}
	s.log.Error("compile error", "error", err)
	writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
