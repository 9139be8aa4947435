package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// LocalStorage stores uploaded documents on the local filesystem. Files are
// served statically under /uploads by the HTTP server.
type LocalStorage struct {
	uploadDir  string
	publicPath string
}

func NewLocalStorage(uploadDir string) (*LocalStorage, error) {
	if err := os.MkdirAll(uploadDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &LocalStorage{
		uploadDir:  uploadDir,
		publicPath: "/uploads",
	}, nil
}

// Dir returns the directory files are stored in, for the static file route.
func (s *LocalStorage) Dir() string {
	return s.uploadDir
}

func (s *LocalStorage) Save(origName string, r io.Reader) (string, error) {
	ext := strings.ToLower(filepath.Ext(origName))
	name := uuid.New().String() + ext
	fullPath := filepath.Join(s.uploadDir, name)

	f, err := os.Create(fullPath)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(fullPath)
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	return s.publicPath + "/" + name, nil
}

func (s *LocalStorage) Open(name string) (io.ReadCloser, error) {
	// Reject path traversal in stored names.
	if name != filepath.Base(name) {
		return nil, fmt.Errorf("invalid file name: %s", name)
	}
	return os.Open(filepath.Join(s.uploadDir, name))
}

func (s *LocalStorage) Delete(name string) error {
	if name != filepath.Base(name) {
		return fmt.Errorf("invalid file name: %s", name)
	}
	err := os.Remove(filepath.Join(s.uploadDir, name))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}
