package gemini

import (
	"context"
	"errors"
	"os"

	"google.golang.org/genai"

	"github.com/verity-labs/docvet/internal/api"
)

const (
	defaultCompletionModel = "gemini-2.0-flash"
	defaultEmbedModel      = "gemini-embedding-exp-03-07"
)

// GeminiProvider backs both provider contracts with the Gemini API.
type GeminiProvider struct {
	client     *genai.Client
	vectorDims *int32
}

func New() *GeminiProvider {
	// New methods might need error return
	// to handle error returns from client libs like genai
	c, _ := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey:  os.Getenv("GEMINI_API_KEY"),
		Backend: genai.BackendGeminiAPI,
	})
	p := &GeminiProvider{
		client:     c,
		vectorDims: new(int32),
	}
	*(p.vectorDims) = 1536
	return p
}

func (p *GeminiProvider) Complete(ctx context.Context, req api.CompletionRequest) (string, error) {
	config := &genai.GenerateContentConfig{
		Temperature: &req.Temperature,
	}
	if req.MaxTokens > 0 {
		config.MaxOutputTokens = int32(req.MaxTokens)
	}

	model := defaultCompletionModel
	if req.ModelName != "" {
		model = req.ModelName
	}

	contents := genai.Text(req.Prompt)
	res, err := p.client.Models.GenerateContent(ctx, model, contents, config)
	if err != nil {
		return "", err
	}

	return res.Text(), nil
}

func (p *GeminiProvider) EmbedQuery(ctx context.Context, q string) ([]float32, error) {
	config := &genai.EmbedContentConfig{
		TaskType:             "RETRIEVAL_QUERY",
		OutputDimensionality: p.vectorDims,
	}
	return p.requestEmbedding(ctx, q, config)
}

func (p *GeminiProvider) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	config := &genai.EmbedContentConfig{
		TaskType:             "RETRIEVAL_DOCUMENT",
		OutputDimensionality: p.vectorDims,
	}

	vectors := make([][]float32, len(texts))
	for i, text := range texts {
		vec, err := p.requestEmbedding(ctx, text, config)
		if err != nil {
			return nil, err
		}
		vectors[i] = vec
	}
	return vectors, nil
}

func (p *GeminiProvider) requestEmbedding(ctx context.Context, input string, config *genai.EmbedContentConfig) ([]float32, error) {
	contents := genai.Text(input)

	res, err := p.client.Models.EmbedContent(ctx, defaultEmbedModel, contents, config)
	if err != nil {
		return nil, err
	}

	if len(res.Embeddings) == 0 {
		return nil, errors.New("failed to deserialize embeddings")
	}

	return res.Embeddings[0].Values, nil
}
