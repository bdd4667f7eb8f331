package services

import (
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// FileService persists uploaded poster images under a fixed directory.
// Callers own the "default.png" sentinel: it is never saved or deleted here.
type FileService interface {
	Save(file *multipart.FileHeader) (string, error)
	Delete(filename string) error
}

type localFileService struct {
	dir string
}

func NewFileService(dir string) (FileService, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &localFileService{dir: dir}, nil
}

// Save writes the upload under a generated unique name and returns the name.
// The extension is derived from the upload's declared content type.
func (s *localFileService) Save(file *multipart.FileHeader) (string, error) {
	filename := uuid.NewString() + "." + extensionFor(file)

	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	dst, err := os.Create(filepath.Join(s.dir, filename))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}
	return filename, nil
}

// Delete removes a stored file. A file that is already gone is not an error.
func (s *localFileService) Delete(filename string) error {
	err := os.Remove(filepath.Join(s.dir, filename))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func extensionFor(file *multipart.FileHeader) string {
	contentType := file.Header.Get("Content-Type")
	if idx := strings.LastIndex(contentType, "/"); idx >= 0 && idx+1 < len(contentType) {
		return contentType[idx+1:]
	}
	if ext := strings.TrimPrefix(filepath.Ext(file.Filename), "."); ext != "" {
		return ext
	}
	return "png"
}
