package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"

	"github.com/verity-labs/docvet/internal/api"
	"github.com/verity-labs/docvet/internal/tasks"
	"github.com/verity-labs/docvet/internal/transport"
)

type validateRecordRequest struct {
	Fields map[string]any `json:"fields"`
}

type createValidationResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

type getValidationResponse struct {
	ID          string                `json:"id"`
	Status      string                `json:"status"`
	Filename    string                `json:"filename,omitempty"`
	StartedAt   int64                 `json:"started_at,omitempty"`
	CompletedAt int64                 `json:"completed_at,omitempty"`
	Report      *api.ValidationReport `json:"report,omitempty"`
}

func (s *Server) handleValidateDocument(w http.ResponseWriter, r *http.Request) {
	filename, text, err := readUpload(r)
	if err != nil {
		slog.Debug("rejected document upload", "filename", filename, "err", err)
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	slog.Info("received validate-document request", "filename", filename)

	report, err := s.validator.ValidateDocument(r.Context(), text)
	if err != nil {
		slog.Error("document validation failed", "filename", filename, "err", err)
		writeError(w, statusForError(err), err.Error())
		return
	}

	writeJSON(w, http.StatusOK, report)
}

func (s *Server) handleValidateRecord(w http.ResponseWriter, r *http.Request) {
	var req validateRecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(req.Fields) == 0 {
		writeError(w, http.StatusBadRequest, "fields must not be empty")
		return
	}
	slog.Info("received validate-record request", "fields", len(req.Fields))

	report, err := s.validator.ValidateRecord(r.Context(), req.Fields)
	if err != nil {
		slog.Error("record validation failed", "err", err)
		writeError(w, statusForError(err), err.Error())
		return
	}

	writeJSON(w, http.StatusOK, report)
}

func (s *Server) handleCreateValidation(w http.ResponseWriter, r *http.Request) {
	filename, text, err := readUpload(r)
	if err != nil {
		slog.Debug("rejected document upload", "filename", filename, "err", err)
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	traceId := uuid.NewString()

	task, err := tasks.NewValidateTask(traceId, filename, text)
	if err != nil {
		slog.Error("failed to build validate task", "err", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	trace := &transport.ValidationTrace{
		ID:        traceId,
		Status:    transport.TraceStatusPending,
		StartedAt: time.Now().UnixNano(),
		Filename:  filename,
	}
	if err := s.store.SetTrace(r.Context(), trace); err != nil {
		slog.Error("failed to set trace", "id", traceId, "err", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	info, err := s.asynqClient.Enqueue(task, asynq.TaskID(traceId))
	if err != nil {
		slog.Error("failed to enqueue validate task", "id", traceId, "err", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	slog.Info("enqueued task successfully", "id", info.ID, "filename", filename)

	writeJSON(w, http.StatusAccepted, createValidationResponse{
		ID:     traceId,
		Status: transport.StatusName(transport.TraceStatusPending),
	})
}

func (s *Server) handleGetValidation(w http.ResponseWriter, r *http.Request) {
	traceId := r.PathValue("id")

	trace, err := s.store.GetTrace(r.Context(), traceId)
	if errors.Is(err, transport.ErrTraceNotFound) {
		writeError(w, http.StatusNotFound, "validation with given id does not exist")
		return
	}
	if err != nil {
		slog.Error("failed to load trace", "id", traceId, "err", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	resp := getValidationResponse{
		ID:          trace.ID,
		Status:      transport.StatusName(trace.Status),
		Filename:    trace.Filename,
		StartedAt:   trace.StartedAt,
		CompletedAt: trace.CompletedAt,
	}

	if trace.Status == transport.TraceStatusCompleted {
		report, err := s.store.GetResult(r.Context(), traceId)
		if err != nil {
			slog.Error("failed to load result", "id", traceId, "err", err)
			writeError(w, http.StatusInternalServerError, "internal server error")
			return
		}
		resp.Report = report
	}

	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
