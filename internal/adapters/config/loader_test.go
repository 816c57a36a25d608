package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/Viskhan-95/golden-chicken/internal/adapters/config"
	"github.com/Viskhan-95/golden-chicken/internal/core/domain"
	"github.com/Viskhan-95/golden-chicken/internal/core/ports/mocks"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), domain.DefaultConfigFile)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	loader := config.NewLoader(mocks.NewMockLogger(ctrl))

	path := writeConfig(t, `
version: "1"
catalog: menu.yaml
pageSize: 4
currency: "₽"
output: linear
log:
  json: true
  verbose: true
`)

	cfg, err := loader.Load(path)
	require.NoError(t, err)
	assert.Equal(t, domain.Config{
		Version:    "1",
		Catalog:    filepath.Join(filepath.Dir(path), "menu.yaml"),
		PageSize:   4,
		Currency:   "₽",
		Output:     "linear",
		LogJSON:    true,
		LogVerbose: true,
	}, cfg)
}

func TestLoad_Defaults(t *testing.T) {
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Warn("config has no version, assuming 1")

	cfg, err := config.NewLoader(log).Load(writeConfig(t, "pageSize: 8\n"))
	require.NoError(t, err)

	want := domain.DefaultConfig()
	want.PageSize = 8
	assert.Equal(t, want, cfg)
}

func TestLoad_MissingDefaultFile(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := config.NewLoader(nil).Load("")
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultConfig(), cfg)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := config.NewLoader(nil).Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr error
		wantMsg string
	}{
		{
			name:    "unknown key",
			content: "pagesize: 3\n",
			wantMsg: "failed to parse config file",
		},
		{
			name:    "malformed yaml",
			content: "pageSize: [\n",
			wantMsg: "failed to parse config file",
		},
		{
			name:    "zero page size",
			content: "pageSize: 0\n",
			wantErr: domain.ErrInvalidConfig,
		},
		{
			name:    "unknown output",
			content: "output: fancy\n",
			wantErr: domain.ErrInvalidConfig,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := config.Parse([]byte(tt.content))
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
			if tt.wantMsg != "" {
				assert.Contains(t, err.Error(), tt.wantMsg)
			}
		})
	}
}

func TestParse_Empty(t *testing.T) {
	cfg, err := config.Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultPageSize, cfg.PageSize)
	assert.Equal(t, domain.DefaultCurrency, cfg.Currency)
}
