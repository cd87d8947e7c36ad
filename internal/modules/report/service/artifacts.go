package service

import (
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"

	"github.com/hbk671104/options-calculator/internal/modules/config"
)

// Artifacts пишет текст отчёта в файловый кэш.
type Artifacts struct {
	dir string
}

func NewArtifacts(cfg *config.Config) *Artifacts {
	return &Artifacts{dir: cfg.Report.CacheDir}
}

func (a *Artifacts) Write(accountID string, generatedAt time.Time, text string) (string, error) {
	if err := os.MkdirAll(a.dir, 0o755); err != nil {
		return "", errors.Wrap(err, "create cache dir")
	}
	path := filepath.Join(a.dir, Filename(accountID, generatedAt))
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return "", errors.Wrap(err, "write report file")
	}
	return path, nil
}
