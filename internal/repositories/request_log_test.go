package repositories_test

import (
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"alfredoptarigan/resume-analyzer/internal/models"
	"alfredoptarigan/resume-analyzer/internal/repositories"
)

func setUpTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := os.Getenv("DATABASE_TEST_URL")
	if dsn == "" {
		t.Skip("DATABASE_TEST_URL not set, skipping integration test")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err, "failed to connect to test database")
	require.NoError(t, db.AutoMigrate(&models.RequestLog{}))

	return db
}

func TestRequestLogRepository_CreateAndFind(t *testing.T) {
	db := setUpTestDB(t)
	repo := repositories.NewRequestLogRepository(db)

	requestID := uuid.NewString()
	entry := &models.RequestLog{
		RequestID:  requestID,
		Method:     "POST",
		Path:       "/api/analyze",
		StatusCode: 200,
		DurationMs: 42,
		FileExt:    "pdf",
		FileSize:   1024,
	}
	require.NoError(t, repo.Create(entry))
	assert.NotEqual(t, uuid.Nil, entry.ID)

	found, err := repo.FindByRequestID(requestID)
	require.NoError(t, err)
	assert.Equal(t, "/api/analyze", found.Path)
	assert.Equal(t, 200, found.StatusCode)
	assert.Nil(t, found.ErrorMessage)
}

func TestRequestLogRepository_FindMissing(t *testing.T) {
	db := setUpTestDB(t)
	repo := repositories.NewRequestLogRepository(db)

	_, err := repo.FindByRequestID("does-not-exist-" + uuid.NewString())
	assert.ErrorIs(t, err, repositories.ErrRequestLogNotFound)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRequestLogRepository_DeleteOlderThan(t *testing.T) {
	db := setUpTestDB(t)
	repo := repositories.NewRequestLogRepository(db)

	old := &models.RequestLog{
		RequestID:  uuid.NewString(),
		Method:     "POST",
		Path:       "/api/improve",
		StatusCode: 500,
		CreatedAt:  time.Now().Add(-48 * time.Hour),
	}
	require.NoError(t, repo.Create(old))

	deleted, err := repo.DeleteOlderThan(time.Now().Add(-24 * time.Hour))
	require.NoError(t, err)
	assert.GreaterOrEqual(t, deleted, int64(1))

	_, err = repo.FindByRequestID(old.RequestID)
	assert.Error(t, err)
}
