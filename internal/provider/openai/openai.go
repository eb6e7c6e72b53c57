package openai

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/sashabaranov/go-openai"

	"github.com/verity-labs/docvet/internal/api"
)

const defaultCompletionModel = openai.GPT4oMini

// OpenAIProvider uses the OpenAI API directly instead of going through
// OpenRouter. Embedding semantics match the default provider: one request
// per text, whole batch discarded on the first failure.
type OpenAIProvider struct {
	client     *openai.Client
	embedModel openai.EmbeddingModel
}

func New() *OpenAIProvider {
	c := openai.NewClient(os.Getenv("OPENAI_API_KEY"))
	return &OpenAIProvider{
		client:     c,
		embedModel: openai.SmallEmbedding3,
	}
}

func (p *OpenAIProvider) EmbedQuery(ctx context.Context, q string) ([]float32, error) {
	return p.requestEmbedding(ctx, q)
}

func (p *OpenAIProvider) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	vectors := make([][]float32, len(texts))
	for i, text := range texts {
		vec, err := p.requestEmbedding(ctx, text)
		if err != nil {
			return nil, fmt.Errorf("failed to embed text %d of %d: %w", i+1, len(texts), err)
		}
		vectors[i] = vec
	}
	return vectors, nil
}

func (p *OpenAIProvider) Complete(ctx context.Context, req api.CompletionRequest) (string, error) {
	model := defaultCompletionModel
	if req.ModelName != "" {
		model = req.ModelName
	}

	openaiReq := openai.ChatCompletionRequest{
		Model:       model,
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: req.Prompt,
			},
		},
	}

	res, err := p.client.CreateChatCompletion(ctx, openaiReq)
	if err != nil {
		return "", err
	}

	if len(res.Choices) == 0 {
		return "", errors.New("completion response contains no choices")
	}

	return res.Choices[0].Message.Content, nil
}

func (p *OpenAIProvider) requestEmbedding(ctx context.Context, input string) ([]float32, error) {
	openaiReq := &openai.EmbeddingRequestStrings{
		Input:          []string{input},
		Model:          p.embedModel,
		EncodingFormat: "float",
	}

	res, err := p.client.CreateEmbeddings(ctx, openaiReq)
	if err != nil {
		return nil, err
	}

	if len(res.Data) == 0 {
		return nil, errors.New("failed to deserialize embeddings")
	}

	return res.Data[0].Embedding, nil
}
