package replacer

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/hengadev/errsx"
	"gopkg.in/yaml.v3"
)

// Environment variables read by ApplyEnv.
const (
	EnvExclude  = "REPLACER_EXCLUDE"
	EnvMethods  = "REPLACER_METHODS"
	EnvTargets  = "REPLACER_TARGETS"
	EnvStrategy = "REPLACER_STRATEGY"
	EnvFormat   = "REPLACER_FORMAT"
	EnvIndent   = "REPLACER_INDENT"
)

// DefaultFormat is the codec name used when a config names none.
const DefaultFormat = "json"

// Config is the file and environment form of a Policy plus output settings.
type Config struct {
	Exclude  []string `yaml:"exclude"`
	Methods  []string `yaml:"methods"`
	Targets  []string `yaml:"targets"`
	Strategy string   `yaml:"strategy"`
	Format   string   `yaml:"format"`
	Indent   int      `yaml:"indent"`
}

// DefaultConfig returns the configuration equivalent to NewPolicy() with
// JSON output indented by two spaces.
func DefaultConfig() Config {
	return Config{
		Exclude:  append([]string(nil), DefaultExcludedKeys...),
		Targets:  []string{string(TypeObject)},
		Strategy: string(KeysEnumerable),
		Format:   DefaultFormat,
		Indent:   len(DefaultIndent),
	}
}

// LoadConfig reads a YAML configuration file on top of DefaultConfig.
// Settings absent from the file keep their defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// ApplyEnv overrides settings from the environment. List settings are comma
// separated; an empty list variable clears the setting.
func (c Config) ApplyEnv() (Config, error) {
	if v, ok := os.LookupEnv(EnvExclude); ok {
		c.Exclude = splitList(v)
	}
	if v, ok := os.LookupEnv(EnvMethods); ok {
		c.Methods = splitList(v)
	}
	if v, ok := os.LookupEnv(EnvTargets); ok {
		c.Targets = splitList(v)
	}
	if v, ok := os.LookupEnv(EnvStrategy); ok {
		c.Strategy = strings.TrimSpace(v)
	}
	if v, ok := os.LookupEnv(EnvFormat); ok {
		c.Format = strings.TrimSpace(v)
	}
	if v, ok := os.LookupEnv(EnvIndent); ok {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return c, fmt.Errorf("%s: %w", EnvIndent, newConfigError("indent", v))
		}
		c.Indent = n
	}
	return c, nil
}

// Validate reports every setting that is not recognised. Policies built from
// an invalid config still work: unknown strategies fall back to enumerable
// and unknown targets never match.
func (c Config) Validate() error {
	var errs errsx.Map

	if c.Strategy != "" && !IsValidKeyStrategy(KeyStrategy(c.Strategy)) {
		errs.Set("strategy", newConfigError("strategy", c.Strategy))
	}

	var targetErrs []error
	for _, t := range c.Targets {
		if !IsValidTypeTag(TypeTag(strings.ToLower(strings.TrimSpace(t)))) {
			targetErrs = append(targetErrs, newConfigError("target", t))
		}
	}
	if len(targetErrs) > 0 {
		errs.Set("targets", errors.Join(targetErrs...))
	}

	var methodErrs []error
	seen := make(map[string]bool)
	for _, m := range c.Methods {
		switch {
		case strings.TrimSpace(m) == "":
			methodErrs = append(methodErrs, newConfigError("method", m))
		case seen[m]:
			methodErrs = append(methodErrs, fmt.Errorf("duplicate method: %w", newConfigError("method", m)))
		}
		seen[m] = true
	}
	if len(methodErrs) > 0 {
		errs.Set("methods", errors.Join(methodErrs...))
	}

	if c.Format != "" {
		if _, err := Lookup(c.Format); err != nil {
			errs.Set("format", err)
		}
	}

	if c.Indent < 0 {
		errs.Set("indent", newConfigError("indent", strconv.Itoa(c.Indent)))
	}

	return errs.AsError()
}

// Policy builds the Policy described by the config.
func (c Config) Policy() *Policy {
	targets := make([]TypeTag, 0, len(c.Targets))
	for _, t := range c.Targets {
		targets = append(targets, TypeTag(strings.ToLower(strings.TrimSpace(t))))
	}
	return NewPolicy(
		WithExcludedKeys(c.Exclude...),
		WithMethods(c.Methods...),
		WithTargets(targets...),
		WithKeyStrategy(KeyStrategy(c.Strategy)),
	)
}

// Serializer builds a Serializer for the config's policy, format and indent.
func (c Config) Serializer(opts ...Option) (*Serializer, error) {
	format := c.Format
	if format == "" {
		format = DefaultFormat
	}
	codec, err := Lookup(format)
	if err != nil {
		return nil, err
	}

	base := []Option{
		WithPolicy(c.Policy()),
		WithCodec(codec),
		WithIndent(strings.Repeat(" ", max(c.Indent, 0))),
	}
	return New(append(base, opts...)...), nil
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
