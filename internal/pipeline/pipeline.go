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

// Package pipeline implements the retrieval-augmented validation pipeline:
// chunk the document, embed the chunks, build a per-request vector index,
// retrieve the passages closest to the compliance query, ask the completion
// provider to analyse them, and reduce the answer to a validation report.
//
// One call owns all of its intermediate state; nothing is shared between
// requests and nothing is retried. Provider failures during embedding fail
// the request, while failures during the completion step degrade the report
// instead, so the caller always gets a structured answer.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/verity-labs/docvet/internal/api"
	"github.com/verity-labs/docvet/internal/chunker"
	"github.com/verity-labs/docvet/internal/provider"
	"github.com/verity-labs/docvet/internal/vector"
)

// ErrEmptyDocument is returned when the extracted text is blank after
// trimming. It is checked before any pipeline work starts.
var ErrEmptyDocument = errors.New("pipeline: document contains no text")

const (
	DefaultChunkSize       = 800
	DefaultChunkOverlap    = 100
	DefaultTopK            = 3
	DefaultMaxContextChars = 2500

	// DefaultQuery is the fixed compliance retrieval query. It is policy,
	// not something discovered from the document.
	DefaultQuery = "Australian Business Number ABN document date compliance"

	defaultTemperature = 0.2
	defaultMaxTokens   = 300
)

// Params holds the tunables of one validator instance.
type Params struct {
	ChunkSize       int
	ChunkOverlap    int
	TopK            int
	MaxContextChars int
	Query           string

	CompletionModel string
	Temperature     float32
	MaxTokens       int
}

// DefaultParams returns the parameters the service ships with.
func DefaultParams() Params {
	return Params{
		ChunkSize:       DefaultChunkSize,
		ChunkOverlap:    DefaultChunkOverlap,
		TopK:            DefaultTopK,
		MaxContextChars: DefaultMaxContextChars,
		Query:           DefaultQuery,
		Temperature:     defaultTemperature,
		MaxTokens:       defaultMaxTokens,
	}
}

// Validator runs validation pipelines against a fixed pair of providers.
// It is safe for concurrent use; every call keeps its own state.
type Validator struct {
	embedder  provider.Embedder
	completer provider.Completer
	params    Params
}

func NewValidator(embedder provider.Embedder, completer provider.Completer, params Params) *Validator {
	if params.Query == "" {
		params.Query = DefaultQuery
	}
	if params.Temperature == 0 {
		params.Temperature = defaultTemperature
	}
	if params.MaxTokens == 0 {
		params.MaxTokens = defaultMaxTokens
	}
	return &Validator{
		embedder:  embedder,
		completer: completer,
		params:    params,
	}
}

// ValidateDocument runs the full pipeline over extracted document text and
// returns the validation report. Errors are returned only for the stages
// where no useful report can exist (empty input, bad chunking parameters,
// embedding or indexing failures); completion and parsing problems degrade
// the report instead.
func (v *Validator) ValidateDocument(ctx context.Context, text string) (api.ValidationReport, error) {
	if strings.TrimSpace(text) == "" {
		return api.ValidationReport{}, ErrEmptyDocument
	}

	docContext, err := v.Retrieve(ctx, text, v.params.Query)
	if err != nil {
		return api.ValidationReport{}, err
	}

	prompt, err := buildAnalysisPrompt(docContext)
	if err != nil {
		return api.ValidationReport{}, err
	}

	raw, err := v.completer.Complete(ctx, api.CompletionRequest{
		Prompt:      prompt,
		ModelName:   v.params.CompletionModel,
		Temperature: v.params.Temperature,
		MaxTokens:   v.params.MaxTokens,
	})

	var parsed Parsed
	if err != nil {
		// The caller still gets a best-effort report, so a completion
		// failure becomes a degraded value rather than an error.
		slog.Warn("completion provider failed", "err", err)
		parsed = DegradedParse("AI analysis unavailable", err.Error())
	} else {
		parsed = ParseAnalysis(raw)
	}

	return Aggregate(parsed), nil
}

// Retrieve assembles the bounded context for a query: chunk, embed, index,
// search, concatenate, truncate. Failures of any stage propagate unchanged.
func (v *Validator) Retrieve(ctx context.Context, text, query string) (string, error) {
	chunks, err := chunker.Split(text, v.params.ChunkSize, v.params.ChunkOverlap)
	if err != nil {
		return "", err
	}

	vectors, err := v.embedder.EmbedTexts(ctx, chunks)
	if err != nil {
		return "", fmt.Errorf("embedding failed: %w", err)
	}

	entries := make([]vector.Entry, len(chunks))
	for i := range chunks {
		entries[i] = vector.Entry{Text: chunks[i], Vector: vectors[i]}
	}

	index, err := vector.Build(entries)
	if err != nil {
		return "", err
	}

	queryVec, err := v.embedder.EmbedQuery(ctx, query)
	if err != nil {
		return "", fmt.Errorf("query embedding failed: %w", err)
	}

	relevant, err := index.Search(queryVec, v.params.TopK)
	if err != nil {
		return "", err
	}

	joined := strings.Join(relevant, "\n")

	// Hard prefix cut; may split a word, which is fine for model context.
	if len(joined) > v.params.MaxContextChars {
		joined = joined[:v.params.MaxContextChars]
	}

	return joined, nil
}
