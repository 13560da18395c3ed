package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"sync"
)

// EmbedderFactory builds the embedding client on first use.
type EmbedderFactory func(ctx context.Context) (Embedder, error)

// SimilarityScorer rates how close a resume is to a job description.
type SimilarityScorer interface {
	Score(ctx context.Context, a, b string) (float64, error)
}

type similarityScorer struct {
	factory EmbedderFactory

	mu       sync.Mutex
	embedder Embedder
}

func NewSimilarityScorer(factory EmbedderFactory) SimilarityScorer {
	return &similarityScorer{factory: factory}
}

// getEmbedder builds the embedder once. Concurrent callers wait for the first
// build; a failed build is retried by the next caller.
func (s *similarityScorer) getEmbedder(ctx context.Context) (Embedder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.embedder != nil {
		return s.embedder, nil
	}

	embedder, err := s.factory(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize embedder: %w", err)
	}

	log.Println("✅ Embedding model initialized")
	s.embedder = embedder
	return embedder, nil
}

// Score returns the cosine similarity of both texts as a whole number in [0,100].
func (s *similarityScorer) Score(ctx context.Context, a, b string) (float64, error) {
	embedder, err := s.getEmbedder(ctx)
	if err != nil {
		return 0, err
	}

	vecA, err := embedder.Embed(ctx, a)
	if err != nil {
		return 0, err
	}

	vecB, err := embedder.Embed(ctx, b)
	if err != nil {
		return 0, err
	}

	cos, err := cosineSimilarity(vecA, vecB)
	if err != nil {
		return 0, err
	}

	return clampScore(math.Round(cos * 100)), nil
}

func cosineSimilarity(a, b []float32) (float64, error) {
	if len(a) == 0 || len(a) != len(b) {
		return 0, fmt.Errorf("embedding dimensions differ: %d vs %d", len(a), len(b))
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	if normA == 0 || normB == 0 {
		return 0, errors.New("zero-length embedding vector")
	}

	return dot / (math.Sqrt(normA) * math.Sqrt(normB)), nil
}

func clampScore(score float64) float64 {
	return math.Max(0, math.Min(100, score))
}
