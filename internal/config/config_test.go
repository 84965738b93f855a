package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, "idgen.yaml", `
node:
  region_id: 3
  worker_id: 42
generator:
  enable_metrics: false
  spin_interval: 50us
log:
  level: debug
  format: console
http:
  addr: 127.0.0.1:9000
  mode: debug
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, int64(3), cfg.Node.RegionID)
	assert.Equal(t, int64(42), cfg.Node.WorkerID)
	assert.False(t, cfg.Generator.EnableMetrics)
	assert.Equal(t, 50*time.Microsecond, cfg.Generator.SpinInterval)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, 100, cfg.Log.MaxSizeMB)
	assert.Equal(t, "127.0.0.1:9000", cfg.HTTP.Addr)

	sf := cfg.SnowflakeConfig()
	assert.Equal(t, int64(42), sf.WorkerID)
	assert.Equal(t, int64(3), sf.RegionID)
	assert.NoError(t, sf.Validate())
}

func TestLoadEnvOverride(t *testing.T) {
	path := writeFile(t, "idgen.json", `{"node": {"region_id": 1, "worker_id": 1}}`)
	t.Setenv("IDGEN_NODE_WORKER_ID", "900")
	t.Setenv("IDGEN_HTTP_ADDR", ":9999")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, int64(1), cfg.Node.RegionID)
	assert.Equal(t, int64(900), cfg.Node.WorkerID)
	assert.Equal(t, ":9999", cfg.HTTP.Addr)
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"区域越界", "node:\n  region_id: 8\n", "RegionID"},
		{"机器越界", "node:\n  worker_id: 1024\n", "WorkerID"},
		{"负数机器", "node:\n  worker_id: -1\n", "WorkerID"},
		{"等待间隔过大", "generator:\n  spin_interval: 2ms\n", "SpinInterval"},
		{"无效模式", "http:\n  mode: prod\n", "Mode"},
		{"无效日志格式", "log:\n  format: xml\n", "Format"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeFile(t, "idgen.yaml", tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
