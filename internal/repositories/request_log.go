package repositories

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"alfredoptarigan/resume-analyzer/internal/models"
)

var ErrRequestLogNotFound = errors.New("request log not found")

type RequestLogRepository interface {
	Create(entry *models.RequestLog) error
	FindByRequestID(requestID string) (*models.RequestLog, error)
	DeleteOlderThan(cutoff time.Time) (int64, error)
}

type requestLogRepository struct {
	db *gorm.DB
}

func NewRequestLogRepository(db *gorm.DB) RequestLogRepository {
	return &requestLogRepository{db: db}
}

// Create implements RequestLogRepository.
func (r *requestLogRepository) Create(entry *models.RequestLog) error {
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}

	if err := r.db.Create(entry).Error; err != nil {
		return fmt.Errorf("failed to create request log: %w", err)
	}
	return nil
}

// FindByRequestID implements RequestLogRepository.
func (r *requestLogRepository) FindByRequestID(requestID string) (*models.RequestLog, error) {
	var entry models.RequestLog
	if err := r.db.Where("request_id = ?", requestID).First(&entry).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %w", ErrRequestLogNotFound, err)
		}
		return nil, fmt.Errorf("failed to find request log: %w", err)
	}
	return &entry, nil
}

// DeleteOlderThan implements RequestLogRepository.
func (r *requestLogRepository) DeleteOlderThan(cutoff time.Time) (int64, error) {
	result := r.db.Where("created_at < ?", cutoff).Delete(&models.RequestLog{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to prune request logs: %w", result.Error)
	}
	return result.RowsAffected, nil
}
