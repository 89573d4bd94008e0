package argcore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dialectic-ai/argcore/dung"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, "reasoner.yaml", `
semantics: preferred
bundle_aggregation: mean
gate_threshold: 0.3
lambda: 0.7
max_iterations: 50
convergence_epsilon: 1e-5
dispute_max_depth: 4
workers: 2
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "preferred", cfg.Semantics)
	assert.Equal(t, "mean", cfg.BundleAggregation)
	require.NotNil(t, cfg.GateThreshold)
	assert.Equal(t, 0.3, *cfg.GateThreshold)
	require.NotNil(t, cfg.Workers)
	assert.Equal(t, 2, *cfg.Workers)
	assert.Len(t, cfg.Options(), 8)
}

func TestLoadConfigFromDirectory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "reasoner.yml"), []byte("semantics: stable\n"), 0o644))

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, "stable", cfg.Semantics)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(t.TempDir())
	require.Error(t, err)
	assert.ErrorIs(t, err, &Error{Kind: KindConfiguration})
}

func TestLoadConfigRejectsUnknownEnums(t *testing.T) {
	path := writeConfig(t, "reasoner.yaml", "semantics: weighted\n")
	_, err := LoadConfig(path)
	assert.ErrorIs(t, err, ErrInvalidOption)

	path = writeConfig(t, "reasoner.yaml", "bundle_aggregation: median\n")
	_, err = LoadConfig(path)
	assert.ErrorIs(t, err, ErrInvalidOption)
}

func TestLoadConfigRejectsMalformedYAML(t *testing.T) {
	path := writeConfig(t, "reasoner.yaml", "semantics: [\n")
	_, err := LoadConfig(path)
	assert.ErrorIs(t, err, &Error{Kind: KindConfiguration})
}

func TestConfigOptionsSkipUnsetFields(t *testing.T) {
	cfg := &Config{Semantics: string(dung.Preferred)}
	opts := cfg.Options()
	assert.Len(t, opts, 1)

	applied := defaultConfig()
	for _, opt := range opts {
		opt(&applied)
	}
	assert.Equal(t, dung.Preferred, applied.semantics)
	assert.Equal(t, DefaultDisputeMaxDepth, applied.disputeMaxDepth)
}
