package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_LoadAndSave(t *testing.T) {
	tmpDir := t.TempDir()
	cfgPath := filepath.Join(tmpDir, "mapper.yaml")

	off := false
	cfg := Config{
		Version:     1,
		Packages:    []string{"./store/..."},
		Directives:  []string{"directives/user.yaml"},
		Parallelism: 2,
		Output:      Output{Package: "mappers", Dir: "gen", Suffix: "_gen.go", Comments: &off},
	}

	err := cfg.Save(cfgPath)
	require.NoError(t, err)

	loaded, err := Load(cfgPath)
	require.NoError(t, err)

	assert.Equal(t, cfg.Version, loaded.Version)
	assert.Equal(t, cfg.Packages, loaded.Packages)
	assert.Equal(t, []string{filepath.Join(tmpDir, "directives/user.yaml")}, loaded.Directives)
	assert.Equal(t, filepath.Join(tmpDir, "gen"), loaded.Output.Dir)
	assert.Equal(t, "mappers", loaded.Output.Package)
	assert.Equal(t, 2, loaded.Parallelism)
	assert.False(t, loaded.Output.GenerateComments())
}

func TestLoad_Defaults(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "mapper.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("version: 1\npackages: [./...]\n"), 0o600))

	cfg, err := Load(cfgPath)
	require.NoError(t, err)

	assert.Equal(t, 4, cfg.Parallelism)
	assert.Equal(t, "_mapper.go", cfg.Output.Suffix)
	assert.True(t, cfg.Output.GenerateComments())
	assert.True(t, cfg.HasSources())
}

func TestLoad_UnknownField(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "mapper.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("version: 1\npackagez: [./...]\n"), 0o600))

	_, err := Load(cfgPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "packagez")
}

func TestLoadOrDefault(t *testing.T) {
	dir := t.TempDir()

	cfg, err := LoadOrDefault(filepath.Join(dir, DefaultFile))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.False(t, cfg.HasSources())

	_, err = LoadOrDefault(filepath.Join(dir, "custom.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{
			name:    "valid config",
			cfg:     Config{Version: 1},
			wantErr: "",
		},
		{
			name:    "unsupported version",
			cfg:     Config{Version: 99},
			wantErr: "unsupported config version",
		},
		{
			name:    "negative parallelism",
			cfg:     Config{Version: 1, Parallelism: -1},
			wantErr: "parallelism",
		},
		{
			name:    "empty directive path",
			cfg:     Config{Version: 1, Directives: []string{""}},
			wantErr: "directive file",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}
