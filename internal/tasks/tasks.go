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

// Package tasks defines the async validation task and its worker-side
// handler.
package tasks

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const (
	TypeValidate = "docvet:validate"
)

type validateTaskPayload struct {
	TraceID  string `json:"trace_id"`
	Filename string `json:"filename"`
	Text     string `json:"text"`
}

// NewValidateTask builds an async validation task for already-extracted
// document text. Validation runs are not retried: a failed run degrades
// the report instead, so a retry would just repeat the same outcome.
func NewValidateTask(traceId, filename, text string) (*asynq.Task, error) {
	payload, err := json.Marshal(validateTaskPayload{
		TraceID:  traceId,
		Filename: filename,
		Text:     text,
	})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeValidate, payload, asynq.MaxRetry(0)), nil
}
