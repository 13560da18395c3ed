package mocks

import (
	"time"

	"github.com/stretchr/testify/mock"

	"alfredoptarigan/resume-analyzer/internal/models"
)

type MockRequestLogRepository struct {
	mock.Mock
}

func (m *MockRequestLogRepository) Create(entry *models.RequestLog) error {
	args := m.Called(entry)
	return args.Error(0)
}

func (m *MockRequestLogRepository) FindByRequestID(requestID string) (*models.RequestLog, error) {
	args := m.Called(requestID)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.RequestLog), args.Error(1)
}

func (m *MockRequestLogRepository) DeleteOlderThan(cutoff time.Time) (int64, error) {
	args := m.Called(cutoff)
	return args.Get(0).(int64), args.Error(1)
}
