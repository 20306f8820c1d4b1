package server

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"time"

	"github.com/IamHari01/NEXUS-TALENT/internal/types"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const defaultLocation = "Remote"

var validate = validator.New()

// AnalyzeRequest represents the request body for /v1/career/analyze. The
// resume field carries either plain text or base64-encoded document bytes.
type AnalyzeRequest struct {
	Resume   string `json:"resume" validate:"required"`
	JobTitle string `json:"job_title" validate:"required"`
	Location string `json:"location"`
}

// handleAnalyze runs the full analysis workflow and returns the terminal
// state. Stage-level failures are reported inside the state; only a workflow
// invocation failure becomes a 500.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := validate.Struct(req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}
	if req.Location == "" {
		req.Location = defaultLocation
	}

	st := &types.State{
		RawDocument: decodeResume(req.Resume),
		JobTitle:    req.JobTitle,
		Location:    req.Location,
	}

	if err := s.engine.Analyze(r.Context(), st); err != nil {
		s.logger.Error("analysis invocation failed", zap.Error(err))
		s.errorResponse(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	s.persist(st)
	s.writeJSON(w, http.StatusOK, st)
}

// handleHealth reports liveness
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// decodeResume accepts base64-encoded document bytes, falling back to the
// raw string when the payload is not base64. PDF uploads arrive encoded;
// plain-text résumés may be sent as-is.
func decodeResume(resume string) []byte {
	if decoded, err := base64.StdEncoding.DecodeString(resume); err == nil {
		return decoded
	}
	return []byte(resume)
}

// persist records the terminal state in the audit store. Failures are
// log-only; the response is already decided.
func (s *Server) persist(st *types.State) {
	if s.db == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.db.SaveAnalysis(ctx, uuid.New(), st.JobTitle, st.Location, st); err != nil {
		s.logger.Warn("failed to persist analysis", zap.Error(err))
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.logger.Warn("failed to encode response", zap.Error(err))
	}
}

func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]string{"error": message})
}
