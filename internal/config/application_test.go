package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anchore/cpematch/cpematch/matcher"
	"github.com/anchore/cpematch/cpematch/presenter"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(p, []byte(contents), 0600))
	return p
}

func TestLoadApplicationConfig_defaults(t *testing.T) {
	cfgPath := writeConfig(t, "quiet: false\n")

	cfg, err := LoadApplicationConfig(viper.New(), CliOnlyOptions{ConfigPath: cfgPath})
	require.NoError(t, err)

	assert.Equal(t, cfgPath, cfg.ConfigPath)
	assert.Equal(t, "table", cfg.Output)
	assert.Equal(t, presenter.TablePresenter, cfg.OutputOpt)
	assert.Equal(t, logrus.WarnLevel, cfg.Log.LevelOpt)
	assert.Equal(t, "warning", cfg.Log.Level)
	assert.True(t, strings.HasSuffix(cfg.DB.Dir, filepath.Join("cpematch", "db")), cfg.DB.Dir)
	assert.True(t, cfg.Match.Fuzzy.Enabled)
	assert.False(t, cfg.Match.Fuzzy.ExcludeComponentsWithPURL)
	assert.Equal(t, matcher.DefaultMaxCandidates, cfg.Match.Fuzzy.MaxCandidates)
	assert.Equal(t, matcher.DefaultSimilarity, cfg.Match.Fuzzy.Similarity)
	assert.Greater(t, cfg.Match.Workers, 0)
}

func TestLoadApplicationConfig_fromFile(t *testing.T) {
	dbDir := t.TempDir()
	cfgPath := writeConfig(t, `
output: json
log:
  level: debug
db:
  cache-dir: `+dbDir+`
match:
  workers: 2
  fuzzy:
    enabled: false
    exclude-components-with-purl: true
    max-candidates: 10
    similarity: 0.9
`)

	cfg, err := LoadApplicationConfig(viper.New(), CliOnlyOptions{ConfigPath: cfgPath})
	require.NoError(t, err)

	assert.Equal(t, presenter.JSONPresenter, cfg.OutputOpt)
	assert.Equal(t, logrus.DebugLevel, cfg.Log.LevelOpt)
	assert.Equal(t, uint(1), cfg.Verbosity)
	assert.Equal(t, dbDir, cfg.DB.ToCuratorConfig().DBDir)

	assert.Equal(t, matcher.Config{
		Workers: 2,
		Fuzzy: matcher.FuzzyConfig{
			Enabled:                   false,
			ExcludeComponentsWithPURL: true,
			MaxCandidates:             10,
			Similarity:                0.9,
		},
	}, cfg.Match.ToMatcherConfig())
}

func TestLoadApplicationConfig_invalid(t *testing.T) {
	tests := []struct {
		name     string
		contents string
		cliOpts  CliOnlyOptions
		errMsg   string
	}{
		{
			name:     "bad output",
			contents: "output: sarif\n",
			errMsg:   "bad --output value",
		},
		{
			name:     "bad log level",
			contents: "log:\n  level: chatty\n",
			errMsg:   "bad log level value",
		},
		{
			name:     "level and verbosity together",
			contents: "log:\n  level: info\n",
			cliOpts:  CliOnlyOptions{Verbosity: 2},
			errMsg:   "cannot explicitly set log level",
		},
		{
			name:     "similarity out of range",
			contents: "match:\n  fuzzy:\n    similarity: 1.5\n",
			errMsg:   "match.fuzzy.similarity",
		},
		{
			name:     "no candidates",
			contents: "match:\n  fuzzy:\n    max-candidates: 0\n",
			errMsg:   "match.fuzzy.max-candidates",
		},
		{
			name:     "negative workers",
			contents: "match:\n  workers: -1\n",
			errMsg:   "match.workers",
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			opts := test.cliOpts
			opts.ConfigPath = writeConfig(t, test.contents)

			_, err := LoadApplicationConfig(viper.New(), opts)
			require.Error(t, err)
			assert.Contains(t, err.Error(), test.errMsg)
		})
	}
}

func TestLoadApplicationConfig_missingExplicitFile(t *testing.T) {
	_, err := LoadApplicationConfig(viper.New(), CliOnlyOptions{ConfigPath: filepath.Join(t.TempDir(), "nope.yaml")})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrApplicationConfigNotFound)
}

func TestParseLogLevelOption(t *testing.T) {
	tests := []struct {
		name     string
		cfg      Application
		expected logrus.Level
	}{
		{
			name:     "default",
			expected: logrus.WarnLevel,
		},
		{
			name:     "quiet wins",
			cfg:      Application{Quiet: true, CliOptions: CliOnlyOptions{Verbosity: 3}},
			expected: logrus.PanicLevel,
		},
		{
			name:     "-v",
			cfg:      Application{CliOptions: CliOnlyOptions{Verbosity: 1}},
			expected: logrus.InfoLevel,
		},
		{
			name:     "-vv",
			cfg:      Application{CliOptions: CliOnlyOptions{Verbosity: 2}},
			expected: logrus.DebugLevel,
		},
		{
			name:     "-vvvv",
			cfg:      Application{CliOptions: CliOnlyOptions{Verbosity: 4}},
			expected: logrus.TraceLevel,
		},
		{
			name:     "explicit level",
			cfg:      Application{Log: logging{Level: "ERROR"}},
			expected: logrus.ErrorLevel,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			cfg := test.cfg
			require.NoError(t, cfg.parseLogLevelOption())
			assert.Equal(t, test.expected, cfg.Log.LevelOpt)
		})
	}
}

func TestApplication_String(t *testing.T) {
	cfg := Application{
		Output: "json",
		Match:  matchConfig{Workers: 3, Fuzzy: fuzzyConfig{Enabled: true, MaxCandidates: 5, Similarity: 0.5}},
	}
	actual := cfg.String()

	assert.Contains(t, actual, "output: json")
	assert.Contains(t, actual, "workers: 3")
	assert.Contains(t, actual, "max-candidates: 5")
	assert.NotContains(t, actual, "cliOptions")
}
