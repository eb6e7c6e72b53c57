// Package provider defines the embedding and completion provider contracts
// and the factories that resolve a configured provider name to a client.
package provider

import (
	"context"
	"errors"

	"github.com/verity-labs/docvet/internal/api"
	"github.com/verity-labs/docvet/internal/provider/gemini"
	"github.com/verity-labs/docvet/internal/provider/openai"
	"github.com/verity-labs/docvet/internal/provider/openrouter"
)

var (
	ErrInvalidEmbedderType  = errors.New("no embedding provider found for given type")
	ErrInvalidCompleterType = errors.New("no completion provider found for given type")
)

type EmbedderType int
type CompleterType int

const (
	EmbedderTypeOpenRouter EmbedderType = iota
	EmbedderTypeOpenAI
	EmbedderTypeGemini
)

const (
	CompleterTypeOpenRouter CompleterType = iota
	CompleterTypeOpenAI
	CompleterTypeGemini
)

var embedderTypeMap = map[string]EmbedderType{
	"openrouter": EmbedderTypeOpenRouter,
	"openai":     EmbedderTypeOpenAI,
	"gemini":     EmbedderTypeGemini,
}

var completerTypeMap = map[string]CompleterType{
	"openrouter": CompleterTypeOpenRouter,
	"openai":     CompleterTypeOpenAI,
	"gemini":     CompleterTypeGemini,
}

// Embedder turns texts into fixed-dimension vectors. Implementations must
// preserve input order and fail the whole batch on any provider error;
// partial embeddings are never returned.
type Embedder interface {
	EmbedQuery(ctx context.Context, q string) ([]float32, error)
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// Completer sends one single-turn prompt and returns the raw model output,
// unparsed. Callers own any interpretation of the text.
type Completer interface {
	Complete(ctx context.Context, req api.CompletionRequest) (string, error)
}

// ParseEmbedderType resolves a configured provider name.
func ParseEmbedderType(name string) (EmbedderType, error) {
	t, ok := embedderTypeMap[name]
	if !ok {
		return 0, ErrInvalidEmbedderType
	}
	return t, nil
}

// ParseCompleterType resolves a configured provider name.
func ParseCompleterType(name string) (CompleterType, error) {
	t, ok := completerTypeMap[name]
	if !ok {
		return 0, ErrInvalidCompleterType
	}
	return t, nil
}

func NewEmbedder(t EmbedderType) (Embedder, error) {
	switch t {
	case EmbedderTypeOpenRouter:
		return openrouter.New(), nil
	case EmbedderTypeOpenAI:
		return openai.New(), nil
	case EmbedderTypeGemini:
		return gemini.New(), nil
	default:
		return nil, ErrInvalidEmbedderType
	}
}

func NewCompleter(t CompleterType) (Completer, error) {
	switch t {
	case CompleterTypeOpenRouter:
		return openrouter.New(), nil
	case CompleterTypeOpenAI:
		return openai.New(), nil
	case CompleterTypeGemini:
		return gemini.New(), nil
	default:
		return nil, ErrInvalidCompleterType
	}
}
