package services

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeEmbedder maps each text to a fixed vector.
type fakeEmbedder struct {
	vectors map[string][]float32
}

func (f *fakeEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	vec, ok := f.vectors[text]
	if !ok {
		return nil, errors.New("unknown text")
	}
	return vec, nil
}

func newFakeScorer(calls *int32) SimilarityScorer {
	embedder := &fakeEmbedder{vectors: map[string][]float32{
		"go":     {1, 0, 0},
		"golang": {0.9, 0.1, 0},
		"cobol":  {0, 0, 1},
		"anti":   {-1, 0, 0},
	}}

	return NewSimilarityScorer(func(context.Context) (Embedder, error) {
		atomic.AddInt32(calls, 1)
		return embedder, nil
	})
}

func TestSimilarityScorer_Score(t *testing.T) {
	var calls int32
	scorer := newFakeScorer(&calls)
	ctx := context.Background()

	self, err := scorer.Score(ctx, "go", "go")
	require.NoError(t, err)
	assert.Equal(t, 100.0, self)

	ab, err := scorer.Score(ctx, "go", "golang")
	require.NoError(t, err)
	ba, err := scorer.Score(ctx, "golang", "go")
	require.NoError(t, err)
	assert.Equal(t, ab, ba)
	assert.Equal(t, 99.0, ab)

	orthogonal, err := scorer.Score(ctx, "go", "cobol")
	require.NoError(t, err)
	assert.Equal(t, 0.0, orthogonal)

	opposite, err := scorer.Score(ctx, "go", "anti")
	require.NoError(t, err)
	assert.Equal(t, 0.0, opposite)

	_, err = scorer.Score(ctx, "go", "missing")
	assert.Error(t, err)
}

func TestSimilarityScorer_InitializesOnce(t *testing.T) {
	var calls int32
	scorer := newFakeScorer(&calls)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := scorer.Score(context.Background(), "go", "golang")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestSimilarityScorer_FailedInitIsRetried(t *testing.T) {
	var calls int32
	scorer := NewSimilarityScorer(func(context.Context) (Embedder, error) {
		if atomic.AddInt32(&calls, 1) == 1 {
			return nil, errors.New("quota exceeded")
		}
		return &fakeEmbedder{vectors: map[string][]float32{"a": {1, 1}}}, nil
	})

	_, err := scorer.Score(context.Background(), "a", "a")
	require.Error(t, err)

	score, err := scorer.Score(context.Background(), "a", "a")
	require.NoError(t, err)
	assert.Equal(t, 100.0, score)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestCosineSimilarity_Errors(t *testing.T) {
	_, err := cosineSimilarity([]float32{1, 2}, []float32{1})
	assert.Error(t, err)

	_, err = cosineSimilarity([]float32{0, 0}, []float32{1, 1})
	assert.Error(t, err)
}
