package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type MockTextGenerator struct {
	mock.Mock
}

func (m *MockTextGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}

type MockEmbedder struct {
	mock.Mock
}

func (m *MockEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	args := m.Called(ctx, text)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]float32), args.Error(1)
}

type MockSimilarityScorer struct {
	mock.Mock
}

func (m *MockSimilarityScorer) Score(ctx context.Context, a, b string) (float64, error) {
	args := m.Called(ctx, a, b)
	return args.Get(0).(float64), args.Error(1)
}
