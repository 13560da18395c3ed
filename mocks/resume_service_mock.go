package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"alfredoptarigan/resume-analyzer/internal/models"
	"alfredoptarigan/resume-analyzer/internal/services"
)

type MockResumeService struct {
	mock.Mock
}

func (m *MockResumeService) ExtractText(data []byte, filename string) (string, error) {
	args := m.Called(data, filename)
	return args.String(0), args.Error(1)
}

func (m *MockResumeService) Analyze(ctx context.Context, resumeText, jobDescription string, useSimilarity bool) (models.AnalysisResult, error) {
	args := m.Called(ctx, resumeText, jobDescription, useSimilarity)
	return args.Get(0).(models.AnalysisResult), args.Error(1)
}

func (m *MockResumeService) Improve(ctx context.Context, resumeText, jobDescription string) (services.Normalized, error) {
	args := m.Called(ctx, resumeText, jobDescription)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(services.Normalized), args.Error(1)
}

func (m *MockResumeService) Rewrite(ctx context.Context, resumeText, targetRole string) (models.RewrittenResume, error) {
	args := m.Called(ctx, resumeText, targetRole)
	return args.Get(0).(models.RewrittenResume), args.Error(1)
}
