package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	"github.com/verity-labs/docvet/internal/pipeline"
	"github.com/verity-labs/docvet/internal/transport"
)

type TaskHandler struct {
	validator *pipeline.Validator
	store     transport.Store
}

func NewTaskHandler(validator *pipeline.Validator, store transport.Store) *TaskHandler {
	return &TaskHandler{
		validator: validator,
		store:     store,
	}
}

func (h TaskHandler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	if t.Type() != TypeValidate {
		return fmt.Errorf("unrecognized task type (%w)", asynq.SkipRetry)
	}

	var p validateTaskPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("failed to decode task payload: %v (%w)", err, asynq.SkipRetry)
	}
	slog.Info("received validate task", "id", p.TraceID, "filename", p.Filename)

	trace := &transport.ValidationTrace{
		ID:        p.TraceID,
		Status:    transport.TraceStatusRunning,
		StartedAt: time.Now().UnixNano(),
		Filename:  p.Filename,
	}
	if err := h.store.SetTrace(ctx, trace); err != nil {
		slog.Error("failed to set trace", "id", p.TraceID, "err", err)
	}

	report, err := h.validator.ValidateDocument(ctx, p.Text)
	if err != nil {
		trace.CompletedAt = time.Now().UnixNano()
		trace.Status = transport.TraceStatusFailed
		if terr := h.store.SetTrace(ctx, trace); terr != nil {
			slog.Error("failed to set trace", "id", p.TraceID, "err", terr)
		}
		return fmt.Errorf("validation failed: %v (%w)", err, asynq.SkipRetry)
	}

	if err := h.store.SetResult(ctx, p.TraceID, report); err != nil {
		slog.Error("failed to store result", "id", p.TraceID, "err", err)
		trace.CompletedAt = time.Now().UnixNano()
		trace.Status = transport.TraceStatusFailed
		if terr := h.store.SetTrace(ctx, trace); terr != nil {
			slog.Error("failed to set trace", "id", p.TraceID, "err", terr)
		}
		return fmt.Errorf("failed to store result: %v (%w)", err, asynq.SkipRetry)
	}

	trace.CompletedAt = time.Now().UnixNano()
	trace.Status = transport.TraceStatusCompleted
	if err := h.store.SetTrace(ctx, trace); err != nil {
		slog.Error("failed to set trace", "id", p.TraceID, "err", err)
	}

	return nil
}
