package conf

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type testHttpConfig struct {
	Host string `conf:"host"`
	Port int    `conf:"port"`
}

type testConfig struct {
	LogLevel string         `conf:"log_level"`
	Pretty   bool           `conf:"pretty"`
	Timeout  time.Duration  `conf:"timeout"`
	Http     testHttpConfig `conf:"http"`
}

var testDefaults = Combine(
	DefaultConfig{
		"log_level": "info",
		"pretty":    true,
	},
	MergeDefaults("http", DefaultConfig{
		"host": "localhost",
		"port": 0,
	}),
)

func writeFile(t *testing.T, name, content string) string {
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestParse_Defaults(t *testing.T) {
	cfg, err := Parse[testConfig](ParseOptions{
		Defaults:  testDefaults,
		EnvPrefix: "MIRROR_TEST_DEFAULTS_",
		Log:       zaptest.NewLogger(t),
	})
	require.NoError(t, err)

	assert.Equal(t, testConfig{
		LogLevel: "info",
		Pretty:   true,
		Http:     testHttpConfig{Host: "localhost"},
	}, cfg)
}

func TestParse_Env(t *testing.T) {
	t.Setenv("MIRROR_TEST_ENV_HTTP__PORT", "8890")
	t.Setenv("MIRROR_TEST_ENV_PRETTY", "false")
	t.Setenv("MIRROR_TEST_ENV_TIMEOUT", "2s")

	cfg, err := Parse[testConfig](ParseOptions{
		Defaults:  testDefaults,
		EnvPrefix: "MIRROR_TEST_ENV_",
	})
	require.NoError(t, err)

	assert.Equal(t, 8890, cfg.Http.Port)
	assert.Equal(t, "localhost", cfg.Http.Host)
	assert.False(t, cfg.Pretty)
	assert.Equal(t, 2*time.Second, cfg.Timeout)
}

func TestParse_Files(t *testing.T) {
	tests := map[string]string{
		"config.json": `{"log_level": "debug", "http": {"port": 8889}}`,
		"config.yaml": "log_level: debug\nhttp:\n  port: 8889\n",
		"config.yml":  "log_level: debug\nhttp:\n  port: 8889\n",
		"config.toml": "log_level = \"debug\"\n[http]\nport = 8889\n",
	}

	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			cfg, err := Parse[testConfig](ParseOptions{
				Defaults:  testDefaults,
				EnvPrefix: "MIRROR_TEST_FILES_",
				FileName:  writeFile(t, name, content),
			})
			require.NoError(t, err)

			assert.Equal(t, "debug", cfg.LogLevel)
			assert.Equal(t, 8889, cfg.Http.Port)
			assert.Equal(t, "localhost", cfg.Http.Host)
		})
	}
}

func TestParse_EnvOverridesFile(t *testing.T) {
	t.Setenv("MIRROR_TEST_LAYER_HTTP__PORT", "9000")

	cfg, err := Parse[testConfig](ParseOptions{
		Defaults:  testDefaults,
		EnvPrefix: "MIRROR_TEST_LAYER_",
		FileName:  writeFile(t, "config.json", `{"http": {"port": 8889}}`),
	})
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Http.Port)
}

func TestParse_MissingFile(t *testing.T) {
	_, err := Parse[testConfig](ParseOptions{
		EnvPrefix: "MIRROR_TEST_MISSING_",
		FileName:  filepath.Join(t.TempDir(), "missing.json"),
	})
	assert.Error(t, err)
}

func TestTransformEnv(t *testing.T) {
	assert.Equal(t, "http.port", transformEnv("MIRROR_HTTP__PORT", "MIRROR_"))
	assert.Equal(t, "log_level", transformEnv("MIRROR_LOG_LEVEL", "MIRROR_"))
	assert.Equal(t, "responder.env_prefix", transformEnv("MIRROR_RESPONDER__ENV_PREFIX", "MIRROR_"))
	assert.Equal(t, "path", transformEnv("PATH", ""))
}

func TestMergeDefaults(t *testing.T) {
	merged := MergeDefaults("http", DefaultConfig{"host": "a"}, DefaultConfig{"port": 1})

	assert.Equal(t, DefaultConfig{"http.host": "a", "http.port": 1}, merged)
}

func TestCombine(t *testing.T) {
	combined := Combine(DefaultConfig{"a": 1, "b": 1}, DefaultConfig{"b": 2})

	assert.Equal(t, DefaultConfig{"a": 1, "b": 2}, combined)
}
