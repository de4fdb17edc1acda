package outbound

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"
)

// ImageStorage keeps uploaded images under <dir>/images.
type ImageStorage struct {
	dir string
}

func NewImageStorage(storageDir string) *ImageStorage {
	return &ImageStorage{dir: filepath.Join(storageDir, "images")}
}

func (s *ImageStorage) Dir() string {
	return s.dir
}

// Save writes data as <id><ext> and returns the file name and full path.
// The extension comes from the original name, then the mime type, then .png.
func (s *ImageStorage) Save(ctx context.Context, id, originalName, mimeType string, data []byte) (string, string, error) {
	if id == "" || filepath.Base(id) != id {
		return "", "", fmt.Errorf("invalid image id %q", id)
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", "", err
	}

	fileName := id + imageExtension(originalName, mimeType)
	path := filepath.Join(s.dir, fileName)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", "", err
	}
	return fileName, path, nil
}

func (s *ImageStorage) Read(ctx context.Context, path string) ([]byte, error) {
	if !strings.HasPrefix(filepath.Clean(path), filepath.Clean(s.dir)+string(filepath.Separator)) {
		return nil, errors.New("image path outside storage")
	}
	return os.ReadFile(path)
}

func imageExtension(originalName, mimeType string) string {
	if ext := strings.ToLower(filepath.Ext(originalName)); ext != "" {
		return ext
	}
	if exts, err := mime.ExtensionsByType(mimeType); err == nil && len(exts) > 0 {
		return exts[0]
	}
	return ".png"
}
