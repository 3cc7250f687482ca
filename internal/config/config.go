// Package config defines the global command-line options and the YAML
// configuration file loader plugged into kong.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"gopkg.in/yaml.v3"

	"github.com/julianstephens/momentum/internal/constants"
	"github.com/julianstephens/momentum/internal/storage"
	"github.com/julianstephens/momentum/internal/utils"
)

// EnvConfigFile names an extra YAML config file to read
const EnvConfigFile = "MOMENTUM_CONFIG_FILE"

// Globals are the options shared by every command
type Globals struct {
	Version   kong.VersionFlag `help:"Print version and exit."`
	Config    string           `help:"State store: SQLite path, *.json path, PostgreSQL connection string or 'keyring'. PostgreSQL passwords must NOT be embedded; use the OS keyring or MOMENTUM_DB_CONNECTION." default:"${default_store}" env:"MOMENTUM_CONFIG"`
	Debug     bool             `help:"Enable debug logging to stderr." env:"MOMENTUM_DEBUG"`
	Timezone  string           `help:"IANA timezone used to decide today (default: system)." env:"MOMENTUM_TIMEZONE"`
	NoPersist bool             `help:"Run without saving anything." name:"no-persist" env:"MOMENTUM_NO_PERSIST"`
	Ephemeral bool             `help:"Keep state in memory for this run only." env:"MOMENTUM_EPHEMERAL"`
	LogDir    string           `help:"Directory for log files (default: next to the store)." name:"log-dir" env:"MOMENTUM_LOG_DIR"`
}

// Vars are the kong interpolation variables used by Globals
func Vars() kong.Vars {
	return kong.Vars{
		"version":       constants.Version,
		"default_store": constants.DefaultConfigPath,
	}
}

// ConfigFiles returns the YAML files consulted, in order. Missing files are skipped by kong.
func ConfigFiles() []string {
	files := []string{constants.DefaultYAMLConfig}
	if extra := os.Getenv(EnvConfigFile); extra != "" {
		files = append(files, extra)
	}
	return files
}

// StorageOptions maps the flags onto adapter selection
func (g Globals) StorageOptions() storage.Options {
	return storage.Options{
		Location:  g.Config,
		Disabled:  g.NoPersist,
		Ephemeral: g.Ephemeral,
	}
}

// Clock returns the clock for the configured timezone
func (g Globals) Clock() (utils.Clock, error) {
	return utils.NewSystemClock(g.Timezone)
}

// ConfigDir returns the directory logs are written under
func (g Globals) ConfigDir() string {
	if g.LogDir != "" {
		return storage.ExpandHome(g.LogDir)
	}
	if g.Config == "" || g.Config == storage.KeyringLocation || strings.Contains(g.Config, "://") || strings.Contains(g.Config, "=") {
		return filepath.Dir(storage.ExpandHome(constants.DefaultConfigPath))
	}
	return filepath.Dir(storage.ExpandHome(g.Config))
}

// YAML is a kong.ConfigurationLoader reading flag values from a YAML
// document. Keys match flag names with either dashes or underscores, and
// dotted flag names may be written as nested mappings.
func YAML(r io.Reader) (kong.Resolver, error) {
	values := map[string]any{}
	if err := yaml.NewDecoder(r).Decode(&values); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse YAML config: %w", err)
	}

	var f kong.ResolverFunc = func(_ *kong.Context, _ *kong.Path, flag *kong.Flag) (any, error) {
		raw, ok := lookup(values, flag.Name)
		if !ok {
			return nil, nil
		}
		return scalar(raw)
	}
	return f, nil
}

func lookup(values map[string]any, name string) (any, bool) {
	for _, key := range []string{name, strings.ReplaceAll(name, "-", "_")} {
		if v, ok := values[key]; ok {
			return v, true
		}
	}

	var raw any = values
	for _, part := range strings.Split(name, ".") {
		m, ok := raw.(map[string]any)
		if !ok {
			return nil, false
		}
		if raw, ok = m[part]; !ok {
			return nil, false
		}
	}
	if _, isMap := raw.(map[string]any); isMap {
		return nil, false
	}
	return raw, true
}

// scalar normalizes YAML values into forms kong's mappers accept
func scalar(v any) (any, error) {
	switch t := v.(type) {
	case nil:
		return nil, nil
	case bool, string:
		return t, nil
	case []any:
		parts := make([]string, len(t))
		for i, item := range t {
			parts[i] = fmt.Sprint(item)
		}
		return strings.Join(parts, ","), nil
	case map[string]any:
		return nil, fmt.Errorf("unexpected mapping in config value")
	default:
		return fmt.Sprint(t), nil
	}
}
