package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/gentry/internal/atom"
	"github.com/mesh-intelligence/gentry/internal/paths"
	"github.com/mesh-intelligence/gentry/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	configFileExt  = "config.yaml"

	cfgKeyBackend          = "backend"
	cfgKeyDataDir          = "data_dir"
	cfgKeyUndeclaredPolicy = "undeclared_policy"
	cfgKeySyncStrategy     = "sync_strategy"
	cfgKeyMetricsTextfile  = "metrics_textfile"

	envPrefix = "GENTRY"
)

// configFile holds the structure written to config.yaml on init.
type configFile struct {
	Backend          string `yaml:"backend"`
	DataDir          string `yaml:"data_dir,omitempty"`
	UndeclaredPolicy string `yaml:"undeclared_policy"`
	SyncStrategy     string `yaml:"sync_strategy"`
	MetricsTextfile  string `yaml:"metrics_textfile,omitempty"`
}

func defaultConfigFile() configFile {
	return configFile{
		Backend:          types.BackendSQLite,
		UndeclaredPolicy: atom.PolicyError.String(),
		SyncStrategy:     types.SyncImmediate,
	}
}

// settings is the resolved configuration of one invocation.
type settings struct {
	configDir       string
	store           types.Config
	policy          atom.Policy
	metricsTextfile string
}

// loadSettings resolves directories and reads config.yaml with viper.
// A missing config.yaml is not an error; defaults apply. Every key except
// data_dir can be overridden by a GENTRY_<KEY> environment variable;
// GENTRY_DATA_DIR ranks below the config file, as paths.ResolveDataDir
// orders it.
func loadSettings(flags *rootFlags) (*settings, error) {
	configDir, err := paths.ResolveConfigDir(flags.configDir)
	if err != nil {
		return nil, fmt.Errorf("resolve config dir: %w", err)
	}

	v, err := readConfig(configDir)
	if err != nil {
		return nil, err
	}

	dataDir, err := paths.ResolveDataDir(flags.dataDir, v.GetString(cfgKeyDataDir))
	if err != nil {
		return nil, fmt.Errorf("resolve data dir: %w", err)
	}

	policy, err := atom.ParsePolicy(v.GetString(cfgKeyUndeclaredPolicy))
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", cfgKeyUndeclaredPolicy, err)
	}

	s := &settings{
		configDir: configDir,
		store: types.Config{
			Backend:      v.GetString(cfgKeyBackend),
			DataDir:      dataDir,
			SyncStrategy: v.GetString(cfgKeySyncStrategy),
		},
		policy:          policy,
		metricsTextfile: v.GetString(cfgKeyMetricsTextfile),
	}
	if err := s.store.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return s, nil
}

func readConfig(configDir string) (*viper.Viper, error) {
	def := defaultConfigFile()

	v := viper.New()
	v.SetDefault(cfgKeyBackend, def.Backend)
	v.SetDefault(cfgKeyUndeclaredPolicy, def.UndeclaredPolicy)
	v.SetDefault(cfgKeySyncStrategy, def.SyncStrategy)
	v.SetDefault(cfgKeyMetricsTextfile, "")
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)

	v.SetEnvPrefix(envPrefix)
	for _, key := range []string{cfgKeyBackend, cfgKeyUndeclaredPolicy, cfgKeySyncStrategy, cfgKeyMetricsTextfile} {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("bind env %s: %w", key, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return v, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	return v, nil
}

// writeConfigIfMissing creates config.yaml with default values if the file
// does not exist. If it already exists, the function returns nil.
func writeConfigIfMissing(configDir, dataDir string) (bool, error) {
	path := filepath.Join(configDir, configFileExt)
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, fmt.Errorf("stat config file: %w", err)
	}

	cfg := defaultConfigFile()
	cfg.DataDir = dataDir

	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return false, fmt.Errorf("marshal config: %w", err)
	}
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return false, fmt.Errorf("create config directory: %w", err)
	}
	return true, os.WriteFile(path, data, 0o644)
}
