package outbound

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/phamm25/ai-chatbot/internal/dataset/entity"
)

// FileArchiver keeps the raw bytes of every profiled dataset under
// <dir>/csv/<datasetID>.csv.
type FileArchiver struct {
	dir string
}

func NewFileArchiver(storageDir string) *FileArchiver {
	return &FileArchiver{dir: filepath.Join(storageDir, "csv")}
}

func (a *FileArchiver) Path(datasetID string) string {
	return filepath.Join(a.dir, datasetID+".csv")
}

func (a *FileArchiver) Handle(ctx context.Context, event entity.DatasetProfiledEvent) error {
	if event.DatasetID == "" {
		return errors.New("missing dataset id")
	}
	if filepath.Base(event.DatasetID) != event.DatasetID {
		return fmt.Errorf("invalid dataset id %q", event.DatasetID)
	}

	if err := os.MkdirAll(a.dir, 0o755); err != nil {
		return err
	}

	path := a.Path(event.DatasetID)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, event.Raw, 0o644); err != nil {
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return err
	}

	slog.InfoContext(ctx, "archived dataset", "event_id", event.EventID, "dataset_id", event.DatasetID, "name", event.Name, "bytes", len(event.Raw))
	return nil
}
