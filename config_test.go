package replacer

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/hengadev/errsx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zoobzio/replacer/yaml"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "replacer.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, []string{"__proto__"}, cfg.Exclude)
	assert.Empty(t, cfg.Methods)
	assert.Equal(t, []string{"object"}, cfg.Targets)
	assert.Equal(t, "enumerable", cfg.Strategy)
	assert.Equal(t, "json", cfg.Format)
	assert.Equal(t, 2, cfg.Indent)
	assert.NoError(t, cfg.Validate())

	p := cfg.Policy()
	def := NewPolicy()
	assert.Equal(t, def.ExcludedKeys(), p.ExcludedKeys())
	assert.Equal(t, def.Targets(), p.Targets())
	assert.Equal(t, def.KeyStrategy(), p.KeyStrategy())
}

func TestDefaultConfigIsolated(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Exclude[0] = "changed"
	assert.Equal(t, []string{"__proto__"}, DefaultExcludedKeys)
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
exclude: [password, token]
methods: [Initials]
strategy: all-string
indent: 4
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"password", "token"}, cfg.Exclude)
	assert.Equal(t, []string{"Initials"}, cfg.Methods)
	assert.Equal(t, "all-string", cfg.Strategy)
	assert.Equal(t, 4, cfg.Indent)

	// absent settings keep their defaults
	assert.Equal(t, []string{"object"}, cfg.Targets)
	assert.Equal(t, "json", cfg.Format)
}

func TestLoadConfigErrors(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = LoadConfig(writeConfig(t, "exclude: [unterminated"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config")
}

func TestApplyEnv(t *testing.T) {
	t.Setenv(EnvExclude, "password, token,")
	t.Setenv(EnvMethods, "")
	t.Setenv(EnvTargets, "object,array")
	t.Setenv(EnvStrategy, " all ")
	t.Setenv(EnvFormat, "yaml")
	t.Setenv(EnvIndent, "4")

	base := DefaultConfig()
	base.Methods = []string{"Initials"}

	cfg, err := base.ApplyEnv()
	require.NoError(t, err)

	assert.Equal(t, []string{"password", "token"}, cfg.Exclude)
	assert.Empty(t, cfg.Methods)
	assert.Equal(t, []string{"object", "array"}, cfg.Targets)
	assert.Equal(t, "all", cfg.Strategy)
	assert.Equal(t, "yaml", cfg.Format)
	assert.Equal(t, 4, cfg.Indent)

	// the receiver is left untouched
	assert.Equal(t, []string{"Initials"}, base.Methods)
}

func TestApplyEnvUnset(t *testing.T) {
	cfg, err := DefaultConfig().ApplyEnv()
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestApplyEnvBadIndent(t *testing.T) {
	t.Setenv(EnvIndent, "wide")

	_, err := DefaultConfig().ApplyEnv()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidConfig)
	assert.Contains(t, err.Error(), EnvIndent)
}

func TestValidate(t *testing.T) {
	cfg := Config{
		Strategy: "own",
		Targets:  []string{"Object", "widget"},
		Methods:  []string{"A", "A", " "},
		Format:   "toml",
		Indent:   -1,
	}

	err := cfg.Validate()
	require.Error(t, err)

	errs, ok := err.(errsx.Map)
	require.True(t, ok, "expected errsx.Map, got %T", err)
	assert.Len(t, errs, 5)

	for _, key := range []string{"strategy", "targets", "methods", "format", "indent"} {
		assert.Contains(t, errs, key)
	}
	assert.True(t, errors.Is(errs["strategy"], ErrInvalidConfig))
	assert.True(t, errors.Is(errs["format"], ErrUnknownCodec))
	assert.Contains(t, errs["targets"].Error(), "widget")
	assert.NotContains(t, errs["targets"].Error(), "Object")
	assert.Contains(t, errs["methods"].Error(), "duplicate")
}

func TestValidateAcceptsAliases(t *testing.T) {
	t.Cleanup(Reset)
	Register(yaml.New(), "yml")

	cfg := Config{Strategy: "symbols", Targets: []string{"ARRAY"}, Format: "yml"}
	assert.NoError(t, cfg.Validate())
}

func TestConfigPolicy(t *testing.T) {
	cfg := Config{
		Exclude:  []string{"password"},
		Methods:  []string{"Initials", "Answer"},
		Targets:  []string{" Object ", "array"},
		Strategy: "all-string",
	}

	p := cfg.Policy()
	assert.Equal(t, []string{"password"}, p.ExcludedKeys())
	assert.Equal(t, []string{"Initials", "Answer"}, p.Methods())
	assert.Equal(t, []TypeTag{TypeArray, TypeObject}, p.Targets())
	assert.Equal(t, KeysAllString, p.KeyStrategy())
}

func TestConfigSerializer(t *testing.T) {
	t.Cleanup(Reset)
	Register(yaml.New())

	var buf bytes.Buffer
	cfg := DefaultConfig()
	cfg.Format = "yaml"
	cfg.Exclude = []string{"b"}

	s, err := cfg.Serializer(WithOutput(&buf))
	require.NoError(t, err)
	assert.Equal(t, "application/yaml", s.Codec().ContentType())

	require.NoError(t, s.Print(context.Background(), map[string]any{"a": 1, "b": 2}))
	assert.Equal(t, "a: 1\n", buf.String())
}

func TestConfigSerializerUnknownFormat(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Format = "toml"

	_, err := cfg.Serializer()
	assert.ErrorIs(t, err, ErrUnknownCodec)
}

func TestConfigSerializerDefaultFormat(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Format = ""
	cfg.Indent = -3

	s, err := cfg.Serializer()
	require.NoError(t, err)
	assert.Equal(t, "application/json", s.Codec().ContentType())
	assert.Equal(t, "", s.indent)
}
