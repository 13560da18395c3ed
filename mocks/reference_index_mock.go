package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"alfredoptarigan/resume-analyzer/internal/services"
)

type MockReferenceIndex struct {
	mock.Mock
}

func (m *MockReferenceIndex) InitCollection(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockReferenceIndex) Upsert(ctx context.Context, chunks []services.ReferenceChunk) error {
	args := m.Called(ctx, chunks)
	return args.Error(0)
}

func (m *MockReferenceIndex) Search(ctx context.Context, queryEmbedding []float32, limit int) ([]services.SearchResult, error) {
	args := m.Called(ctx, queryEmbedding, limit)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]services.SearchResult), args.Error(1)
}

func (m *MockReferenceIndex) DeleteSource(ctx context.Context, source string) error {
	args := m.Called(ctx, source)
	return args.Error(0)
}

func (m *MockReferenceIndex) Close() error {
	args := m.Called()
	return args.Error(0)
}
