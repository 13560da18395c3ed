package services

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// TempStorage holds upload payloads on disk only for as long as an
// extraction library needs a file path.
type TempStorage interface {
	SaveTemp(data []byte, ext string) (string, func(), error)
	EnsureDir() error
}

type tempStorage struct {
	dir string
}

func NewTempStorage(dir string) TempStorage {
	if dir == "" {
		dir = os.TempDir()
	}
	return &tempStorage{dir: dir}
}

func (s *tempStorage) EnsureDir() error {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("failed to create temp directory: %w", err)
	}
	return nil
}

// SaveTemp writes data to a uniquely named file and returns its path together
// with a release func that removes it. Callers must call release on every path.
func (s *tempStorage) SaveTemp(data []byte, ext string) (string, func(), error) {
	filePath := filepath.Join(s.dir, fmt.Sprintf("resume_%s.%s", uuid.New().String(), ext))

	if err := os.WriteFile(filePath, data, 0600); err != nil {
		// WriteFile may leave a partial file behind
		os.Remove(filePath)
		return "", func() {}, fmt.Errorf("failed to write temp file: %w", err)
	}

	release := func() {
		if err := os.Remove(filePath); err != nil && !os.IsNotExist(err) {
			log.Printf("⚠️  Failed to remove temp file %s: %v", filePath, err)
		}
	}

	return filePath, release, nil
}
