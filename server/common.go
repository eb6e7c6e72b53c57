package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/verity-labs/docvet/internal/extract"
	docvethttp "github.com/verity-labs/docvet/internal/http"
	"github.com/verity-labs/docvet/internal/pipeline"
	"github.com/verity-labs/docvet/internal/vector"
)

// maxUploadBytes bounds the in-memory portion of multipart parsing.
const maxUploadBytes = 32 << 20

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "err", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// statusForError maps pipeline failures to HTTP statuses: bad input is the
// client's fault, provider failures are an upstream problem, anything else
// is ours.
func statusForError(err error) int {
	var statusErr *docvethttp.StatusError
	switch {
	case errors.Is(err, extract.ErrUnsupportedFormat),
		errors.Is(err, pipeline.ErrEmptyDocument):
		return http.StatusBadRequest
	case errors.Is(err, vector.ErrDimensionMismatch),
		errors.Is(err, vector.ErrQueryDimensionWrong),
		errors.Is(err, vector.ErrEmptyIndex),
		errors.As(err, &statusErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// readUpload pulls the uploaded document out of a multipart form and
// extracts its text.
func readUpload(r *http.Request) (filename, text string, err error) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		return "", "", fmt.Errorf("invalid multipart form: %w", err)
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		return "", "", fmt.Errorf("missing file field: %w", err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return "", "", fmt.Errorf("failed to read upload: %w", err)
	}

	text, err = extract.Text(header.Filename, data)
	if err != nil {
		return header.Filename, "", err
	}
	return header.Filename, text, nil
}
