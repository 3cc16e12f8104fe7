package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dashboard.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	testCases := []struct {
		name    string
		file    string
		env     map[string]string
		want    *Config
		wantErr string
	}{
		{
			name: "defaults",
			want: Default(),
		},
		{
			name: "file overrides defaults",
			file: "table_a: a.csv\ntitle: Weekly\nverbose: true\n",
			want: &Config{
				TableA:  "a.csv",
				TableB:  "repository_data.csv",
				Out:     "report.html",
				Title:   "Weekly",
				Addr:    "localhost:8080",
				Verbose: true,
			},
		},
		{
			name: "env overrides file",
			file: "table_a: a.csv\naddr: localhost:9000\n",
			env:  map[string]string{"DASHBOARD_TABLE_A": "env.csv", "DASHBOARD_ORG": "acme"},
			want: &Config{
				TableA: "env.csv",
				TableB: "repository_data.csv",
				Out:    "report.html",
				Title:  "GitHub Repository Dashboard",
				Addr:   "localhost:9000",
				Org:    "acme",
			},
		},
		{
			name:    "invalid address",
			env:     map[string]string{"DASHBOARD_ADDR": "not an address"},
			wantErr: "config validation failed",
		},
		{
			name:    "empty table path",
			file:    "table_b: \"\"\n",
			wantErr: "config validation failed",
		},
		{
			name:    "malformed yaml",
			file:    "table_a: [\n",
			wantErr: "failed to parse config file",
		},
		{
			name:    "bad boolean",
			env:     map[string]string{"DASHBOARD_VERBOSE": "sometimes"},
			wantErr: "failed to load config from env",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			for k, v := range tc.env {
				t.Setenv(k, v)
			}
			path := ""
			if tc.file != "" {
				path = writeFile(t, tc.file)
			}

			cfg, err := Load(path)
			if tc.wantErr != "" {
				assert.ErrorContains(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, cfg)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestValidate_ReportsField(t *testing.T) {
	cfg := Default()
	cfg.Out = ""

	err := cfg.Validate()
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	require.Len(t, verrs, 1)
	assert.Equal(t, "Out", verrs[0].Field())
}
