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

package openrouter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/verity-labs/docvet/internal/api"
	"github.com/verity-labs/docvet/internal/http"
)

const (
	Endpoint = "https://openrouter.ai"

	defaultEmbedModel      = "text-embedding-3-small"
	defaultCompletionModel = "openai/gpt-4o-mini"

	// Embedding calls are short; completions take noticeably longer.
	embedTimeout      = 30 * time.Second
	completionTimeout = 60 * time.Second

	// embedMaxFanOut bounds concurrent embedding calls per batch.
	embedMaxFanOut = 4
)

type embeddingResponse struct {
	Model string `json:"model"`
	Data  []struct {
		Index     int       `json:"index"`
		Embedding []float32 `json:"embedding"`
	} `json:"data"`
}

type completionResponse struct {
	Choices []struct {
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// OpenRouterProvider talks to the OpenRouter API with plain JSON calls.
// It implements both the embedding and the completion provider contracts.
type OpenRouterProvider struct {
	embedClient      http.Client
	completionClient http.Client

	embedModel      string
	completionModel string
}

func New() *OpenRouterProvider {
	key := os.Getenv("OPENROUTER_API_KEY")
	return &OpenRouterProvider{
		embedClient: http.NewClient(
			Endpoint,
			http.WithApiKey(key),
			http.WithTimeout(embedTimeout),
		),
		completionClient: http.NewClient(
			Endpoint,
			http.WithApiKey(key),
			http.WithTimeout(completionTimeout),
			http.WithHeader("HTTP-Referer", "http://localhost:8000"),
			http.WithHeader("X-Title", "docvet"),
		),
		embedModel:      defaultEmbedModel,
		completionModel: defaultCompletionModel,
	}
}

func (p *OpenRouterProvider) EmbedQuery(ctx context.Context, q string) ([]float32, error) {
	return p.requestEmbedding(ctx, q)
}

// EmbedTexts embeds every text with its own provider call, fanning out with
// a bounded group. The batch is all-or-nothing: the first failure cancels
// the group and no partial results are returned.
func (p *OpenRouterProvider) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	vectors := make([][]float32, len(texts))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(embedMaxFanOut)
	for i, text := range texts {
		g.Go(func() error {
			vec, err := p.requestEmbedding(ctx, text)
			if err != nil {
				return err
			}
			vectors[i] = vec
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return vectors, nil
}

func (p *OpenRouterProvider) Complete(ctx context.Context, req api.CompletionRequest) (string, error) {
	model := p.completionModel
	if req.ModelName != "" {
		model = req.ModelName
	}

	requestData := map[string]any{
		"model": model,
		"messages": []map[string]any{
			{"role": "user", "content": req.Prompt},
		},
		"temperature": req.Temperature,
		"max_tokens":  req.MaxTokens,
	}

	resp, err := p.completionClient.Request(ctx, http.MethodPost, "/api/v1/chat/completions", requestData)
	if err != nil {
		return "", err
	}

	jsonData, err := json.Marshal(resp)
	if err != nil {
		return "", err
	}

	var cr completionResponse
	if err := json.Unmarshal(jsonData, &cr); err != nil {
		return "", err
	}

	if len(cr.Choices) == 0 {
		return "", errors.New("completion response contains no choices")
	}

	return cr.Choices[0].Message.Content, nil
}

func (p *OpenRouterProvider) requestEmbedding(ctx context.Context, input string) ([]float32, error) {
	requestData := map[string]any{
		"model": p.embedModel,
		"input": input,
	}

	resp, err := p.embedClient.Request(ctx, http.MethodPost, "/api/v1/embeddings", requestData)
	if err != nil {
		return nil, fmt.Errorf("embedding request failed: %w", err)
	}

	jsonData, err := json.Marshal(resp)
	if err != nil {
		return nil, err
	}

	var er embeddingResponse
	if err := json.Unmarshal(jsonData, &er); err != nil {
		return nil, err
	}

	if len(er.Data) == 0 {
		return nil, errors.New("failed to deserialize embeddings")
	}

	return er.Data[0].Embedding, nil
}
