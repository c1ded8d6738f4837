package config_test

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/walteh/exsyntax/pkg/config"
	"github.com/walteh/exsyntax/pkg/diff"
)

func TestLoadConfig(t *testing.T) {
	expected := &config.Config{
		MaxDepth: 256,
		Include:  []string{"lib/**/*.ex", "test/**/*.exs"},
		Exclude:  []string{"deps/**"},
		Format:   "json",
		Color:    true,
		TabWidth: 2,
	}

	tests := []struct {
		name        string
		path        string
		config      string
		expected    *config.Config
		expectError bool
	}{
		{
			name: "yaml",
			path: ".exsyntax.yaml",
			config: `
max_depth: 256
include:
  - "lib/**/*.ex"
  - "test/**/*.exs"
exclude: ["deps/**"]
format: json
color: true
tab_width: 2
`,
			expected: expected,
		},
		{
			name: "hcl",
			path: ".exsyntax.hcl",
			config: `
max_depth = 256
include   = ["lib/**/*.ex", "test/**/*.exs"]
exclude   = ["deps/**"]
format    = "json"
color     = true
tab_width = 2
`,
			expected: expected,
		},
		{
			name:     "hcl_variable",
			path:     ".exsyntax.hcl",
			config:   `include = default_include`,
			expected: &config.Config{Include: []string{"**/*.{ex,exs}"}},
		},
		{
			name:        "yaml_unknown_field",
			path:        ".exsyntax.yml",
			config:      "max_dept: 3\n",
			expectError: true,
		},
		{
			name:        "hcl_unknown_attribute",
			path:        ".exsyntax.hcl",
			config:      `colour = true`,
			expectError: true,
		},
		{
			name:        "hcl_syntax_error",
			path:        ".exsyntax.hcl",
			config:      `include = [`,
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := afero.NewMemMapFs()
			require.NoError(t, afero.WriteFile(fs, tt.path, []byte(tt.config), 0644))

			cfg, err := config.LoadConfig(fs, tt.path)
			if tt.expectError {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, cfg, diff.DiffExportedOnly(tt.expected, cfg))
		})
	}
}

func TestLoadConfig_Missing(t *testing.T) {
	_, err := config.LoadConfig(afero.NewMemMapFs(), "nope.hcl")
	require.Error(t, err)
}

func TestFind(t *testing.T) {
	t.Run("no_file", func(t *testing.T) {
		cfg, path, err := config.Find(afero.NewMemMapFs(), "/repo")
		require.NoError(t, err)
		assert.Equal(t, "", path)
		assert.Equal(t, config.Default(), cfg)
	})

	t.Run("hcl_wins_over_yaml", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		require.NoError(t, afero.WriteFile(fs, "/repo/.exsyntax.hcl", []byte(`format = "json"`), 0644))
		require.NoError(t, afero.WriteFile(fs, "/repo/.exsyntax.yaml", []byte("format: text\n"), 0644))

		cfg, path, err := config.Find(fs, "/repo")
		require.NoError(t, err)
		assert.Equal(t, "/repo/.exsyntax.hcl", path)
		assert.Equal(t, "json", cfg.Format)
		assert.Equal(t, config.Default().Include, cfg.Include)
		assert.Equal(t, 4, cfg.TabWidth)
	})

	t.Run("explicit_empty_exclude_is_kept", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		require.NoError(t, afero.WriteFile(fs, "/repo/.exsyntax.yaml", []byte("exclude: []\n"), 0644))

		cfg, _, err := config.Find(fs, "/repo")
		require.NoError(t, err)
		assert.Empty(t, cfg.Exclude)
	})

	t.Run("broken_file", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		require.NoError(t, afero.WriteFile(fs, "/repo/.exsyntax.yaml", []byte("bogus: 1\n"), 0644))

		_, _, err := config.Find(fs, "/repo")
		require.Error(t, err)
	})
}
