package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"google.golang.org/genai"
)

// TextGenerator sends one prompt to the generative model and returns its reply.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Embedder turns text into a vector.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

type GeminiService interface {
	TextGenerator
	Embedder
	ModelName() string
}

type geminiService struct {
	client          *genai.Client
	modelName       string
	embedModel      string
	embedDimensions int32
}

type GeminiOptions struct {
	APIKey          string
	Model           string
	EmbedModel      string
	EmbedDimensions int
}

func NewGeminiService(ctx context.Context, opts GeminiOptions) (GeminiService, error) {
	if opts.APIKey == "" {
		return nil, errors.New("GENAI_API_KEY is not set")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  opts.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &geminiService{
		client:          client,
		modelName:       opts.Model,
		embedModel:      opts.EmbedModel,
		embedDimensions: int32(opts.EmbedDimensions),
	}, nil
}

func (g *geminiService) ModelName() string {
	return g.modelName
}

// Generate makes exactly one GenerateContent call. Upstream failures are
// logged with their cause and returned as ErrGenerationFailed.
func (g *geminiService) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.modelName, genai.Text(prompt), nil)
	if err != nil {
		log.Printf("❌ Gemini API error: %s", describeGenAIError(err))
		return "", fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}

	if resp == nil {
		log.Println("⚠️  Gemini API returned nil response")
		return "", nil
	}

	// an empty reply is left for the normalizer
	return resp.Text(), nil
}

// Embed implements Embedder.
func (g *geminiService) Embed(ctx context.Context, text string) ([]float32, error) {
	var config *genai.EmbedContentConfig
	if g.embedDimensions > 0 {
		config = &genai.EmbedContentConfig{OutputDimensionality: &g.embedDimensions}
	}

	result, err := g.client.Models.EmbedContent(ctx, g.embedModel, genai.Text(text), config)
	if err != nil {
		return nil, fmt.Errorf("failed to generate embedding: %s", describeGenAIError(err))
	}

	if result == nil || len(result.Embeddings) == 0 {
		return nil, errors.New("empty embedding result")
	}

	return result.Embeddings[0].Values, nil
}

func describeGenAIError(err error) string {
	var apiErr genai.APIError
	if !errors.As(err, &apiErr) {
		return err.Error()
	}

	switch apiErr.Code {
	case 401, 403:
		return fmt.Sprintf("authentication rejected (%d): %s", apiErr.Code, apiErr.Message)
	case 429:
		return fmt.Sprintf("quota exceeded: %s", apiErr.Message)
	default:
		return fmt.Sprintf("upstream error %d %s: %s", apiErr.Code, apiErr.Status, apiErr.Message)
	}
}
