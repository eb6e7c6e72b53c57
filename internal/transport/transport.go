// Copyright 2025 Verity Labs
//
// Permission is hereby granted, free of charge, to any person obtaining a copy of
// this software and associated documentation files (the "Software"), to deal in
// the Software without restriction, including without limitation the rights to use,
// copy, modify, merge, publish, distribute, sublicense, and/or sell copies of the
// Software, and to permit persons to whom the Software is furnished to do so,
// subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND,
// EXPRESS OR IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES
// OF MERCHANTABILITY, FITNESS FOR A PARTICULAR PURPOSE AND
// NONINFRINGEMENT. IN NO EVENT SHALL THE AUTHORS OR COPYRIGHT
// HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER LIABILITY,
// WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING
// FROM, OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR
// OTHER DEALINGS IN THE SOFTWARE.

// Package transport stores validation traces and finished reports so the
// API server and the background worker can exchange state for async
// validations.
package transport

import (
	"context"
	"errors"
	"time"

	"github.com/verity-labs/docvet/internal/api"
)

var (
	// TraceExpiry bounds how long traces and results stay retrievable.
	TraceExpiry = time.Hour * 24

	ErrTraceNotFound  = errors.New("transport: trace not found")
	ErrResultNotFound = errors.New("transport: result not found")
)

type Store interface {
	SetTrace(ctx context.Context, trace *ValidationTrace) error
	GetTrace(ctx context.Context, traceId string) (*ValidationTrace, error)

	SetResult(ctx context.Context, traceId string, report api.ValidationReport) error
	GetResult(ctx context.Context, traceId string) (*api.ValidationReport, error)
}

// ValidationTrace records the lifecycle of one async validation request.
type ValidationTrace struct {
	ID          string `redis:"id"`
	Status      int    `redis:"status"`
	StartedAt   int64  `redis:"started_at"`
	CompletedAt int64  `redis:"completed_at"`
	Filename    string `redis:"filename"`
}

type TraceStatus int

const (
	TraceStatusUnspecified = iota
	TraceStatusPending
	TraceStatusRunning
	TraceStatusCompleted
	TraceStatusFailed
)

// StatusName returns the wire name for a trace status.
func StatusName(status int) string {
	switch status {
	case TraceStatusPending:
		return "PENDING"
	case TraceStatusRunning:
		return "RUNNING"
	case TraceStatusCompleted:
		return "COMPLETED"
	case TraceStatusFailed:
		return "FAILED"
	default:
		return "UNSPECIFIED"
	}
}
