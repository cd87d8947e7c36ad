package service

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/hbk671104/options-calculator/internal/modules/config"
)

func TestArtifactsWrite(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "cache")
	cfg := &config.Config{}
	cfg.Report.CacheDir = dir

	a := NewArtifacts(cfg)
	at := time.Unix(1700000000, 0)

	path, err := a.Write("123", at, "report body")
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "report_123_1700000000.txt"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "report body", string(data))
}
