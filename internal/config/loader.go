package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// configName is the config file name without extension.
const configName = ".checkstyle"

// configType is the config file format.
const configType = "yaml"

// envPrefix is the environment variable prefix for checkstyle settings.
const envPrefix = "CHECKSTYLE"

// envKeySeparator is the nested key separator in environment variable names.
const envKeySeparator = "_"

// Load loads configuration from file, env vars, and defaults.
// If configPath is non-empty, it is used as the explicit config file path.
// Otherwise, the config file is searched in CWD and $HOME.
// Missing config file is not an error; defaults are used.
func Load(configPath string) (*Config, error) {
	viperCfg := viper.New()

	applyDefaults(viperCfg)

	viperCfg.SetConfigType(configType)
	viperCfg.SetEnvPrefix(envPrefix)
	viperCfg.SetEnvKeyReplacer(strings.NewReplacer(".", envKeySeparator))
	viperCfg.AutomaticEnv()

	if configPath != "" {
		viperCfg.SetConfigFile(configPath)
	} else {
		viperCfg.SetConfigName(configName)
		viperCfg.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viperCfg.AddConfigPath(home)
		}
	}

	readErr := viperCfg.ReadInConfig()
	if readErr != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(readErr, &notFound) {
			return nil, fmt.Errorf("read config: %w", readErr)
		}
	}

	var cfg Config

	unmarshalErr := viperCfg.Unmarshal(&cfg)
	if unmarshalErr != nil {
		return nil, fmt.Errorf("unmarshal config: %w", unmarshalErr)
	}

	checksErr := loadChecksSection(viperCfg.ConfigFileUsed(), &cfg)
	if checksErr != nil {
		return nil, checksErr
	}

	validateErr := cfg.Validate()
	if validateErr != nil {
		return nil, fmt.Errorf("validate config: %w", validateErr)
	}

	return &cfg, nil
}

// loadChecksSection re-reads the checks section of the config file with
// yaml.v3. Viper folds every key to lower case, which would mangle the
// case-sensitive check and property names, so the section is decoded
// straight from the file and validated against the embedded schema.
func loadChecksSection(configFile string, cfg *Config) error {
	if configFile == "" {
		cfg.Checks = ChecksConfig{}

		return nil
	}

	raw, readErr := os.ReadFile(configFile)
	if readErr != nil {
		return fmt.Errorf("read config: %w", readErr)
	}

	var generic struct {
		Checks map[string]any `yaml:"checks"`
	}

	decodeErr := yaml.Unmarshal(raw, &generic)
	if decodeErr != nil {
		return fmt.Errorf("decode checks section: %w", decodeErr)
	}

	if generic.Checks == nil {
		cfg.Checks = ChecksConfig{}

		return nil
	}

	schemaErr := validateChecksSection(generic.Checks)
	if schemaErr != nil {
		return schemaErr
	}

	var typed struct {
		Checks ChecksConfig `yaml:"checks"`
	}

	typedErr := yaml.Unmarshal(raw, &typed)
	if typedErr != nil {
		return fmt.Errorf("decode checks section: %w", typedErr)
	}

	cfg.Checks = typed.Checks

	return nil
}

func applyDefaults(viperCfg *viper.Viper) {
	viperCfg.SetDefault("logging.level", DefaultLogLevel)
	viperCfg.SetDefault("logging.format", DefaultLogFormat)
	viperCfg.SetDefault("logging.output", DefaultLogOutput)

	viperCfg.SetDefault("engine.parallel", DefaultEngineParallel)
	viperCfg.SetDefault("engine.fail_on_violation", DefaultFailOnViolation)

	viperCfg.SetDefault("cache.enabled", DefaultCacheEnabled)
	viperCfg.SetDefault("cache.directory", DefaultCacheDirectory)

	viperCfg.SetDefault("checks.enabled", []string{})

	viperCfg.SetDefault("observability.otlp_endpoint", "")
	viperCfg.SetDefault("observability.prometheus_addr", "")

	viperCfg.SetDefault("lsp.max_documents", DefaultLSPMaxDocuments)
}
