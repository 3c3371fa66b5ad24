package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is looked for in the working directory when no
// --config flag is given.
const DefaultConfigFile = "gatekeep.yaml"

const (
	defaultModel     = "nvidia/llama-3.1-nemotron-nano-8b-v1:free"
	defaultBatchSize = 10
	defaultDelaySec  = 2
	defaultTimeout   = 120
)

// Config is the effective run configuration.
type Config struct {
	// APIKey comes from the environment only, never from a file.
	APIKey string `yaml:"-"`

	Model          string `yaml:"model"`
	Endpoint       string `yaml:"endpoint"`
	BatchSize      int    `yaml:"batch_size"`
	DelaySeconds   int    `yaml:"inter_batch_delay_seconds"`
	TimeoutSeconds int    `yaml:"http_timeout_seconds"`
	OutputDir      string `yaml:"output_dir"`
}

// InterBatchDelay is the pause between remote calls.
func (c Config) InterBatchDelay() time.Duration {
	return time.Duration(c.DelaySeconds) * time.Second
}

// HTTPTimeout bounds each remote call.
func (c Config) HTTPTimeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// Default returns a Config with all defaults applied. The endpoint
// default lives in the classifier package; empty here means "use it".
func Default() Config {
	return Config{
		Model:          defaultModel,
		BatchSize:      defaultBatchSize,
		DelaySeconds:   defaultDelaySec,
		TimeoutSeconds: defaultTimeout,
		OutputDir:      ".",
	}
}

// Load builds the effective config: defaults <- file <- env <- flag
// overrides. filePath == "" means the default file, which may be
// absent; a named file must exist. Overrides come from CLI flags with
// only non-zero values set.
func Load(filePath string, overrides map[string]string) (Config, error) {
	// A .env in the working directory feeds the environment, mainly
	// for the API key. Absence is fine.
	_ = godotenv.Load()

	cfg := Default()

	if err := mergeFile(&cfg, filePath); err != nil {
		return Config{}, err
	}
	mergeEnv(&cfg)
	if err := mergeOverrides(&cfg, overrides); err != nil {
		return Config{}, err
	}

	if cfg.APIKey == "" {
		return Config{}, fmt.Errorf("OPENROUTER_API_KEY is not set (environment or .env file)")
	}
	if cfg.BatchSize <= 0 {
		return Config{}, fmt.Errorf("batch size must be positive, got %d", cfg.BatchSize)
	}
	return cfg, nil
}

func mergeFile(cfg *Config, path string) error {
	explicit := path != ""
	if !explicit {
		path = DefaultConfigFile
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return nil
		}
		return fmt.Errorf("reading config file: %w", err)
	}

	var fileCfg Config
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	if fileCfg.Model != "" {
		cfg.Model = fileCfg.Model
	}
	if fileCfg.Endpoint != "" {
		cfg.Endpoint = fileCfg.Endpoint
	}
	if fileCfg.BatchSize > 0 {
		cfg.BatchSize = fileCfg.BatchSize
	}
	if fileCfg.DelaySeconds > 0 {
		cfg.DelaySeconds = fileCfg.DelaySeconds
	}
	if fileCfg.TimeoutSeconds > 0 {
		cfg.TimeoutSeconds = fileCfg.TimeoutSeconds
	}
	if fileCfg.OutputDir != "" {
		cfg.OutputDir = fileCfg.OutputDir
	}
	return nil
}

func mergeEnv(cfg *Config) {
	cfg.APIKey = os.Getenv("OPENROUTER_API_KEY")
	if v := os.Getenv("GATEKEEP_MODEL"); v != "" {
		cfg.Model = v
	}
	if v := os.Getenv("GATEKEEP_ENDPOINT"); v != "" {
		cfg.Endpoint = v
	}
	if v := os.Getenv("GATEKEEP_BATCH_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.BatchSize = n
		}
	}
	if v := os.Getenv("GATEKEEP_DELAY_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.DelaySeconds = n
		}
	}
}

func mergeOverrides(cfg *Config, overrides map[string]string) error {
	for key, value := range overrides {
		if value == "" {
			continue
		}
		switch key {
		case "model":
			cfg.Model = value
		case "endpoint":
			cfg.Endpoint = value
		case "batchSize":
			n, err := strconv.Atoi(value)
			if err != nil {
				return fmt.Errorf("batch size must be an integer: %w", err)
			}
			cfg.BatchSize = n
		case "delaySeconds":
			n, err := strconv.Atoi(value)
			if err != nil {
				return fmt.Errorf("delay must be an integer: %w", err)
			}
			cfg.DelaySeconds = n
		case "timeoutSeconds":
			n, err := strconv.Atoi(value)
			if err != nil {
				return fmt.Errorf("timeout must be an integer: %w", err)
			}
			cfg.TimeoutSeconds = n
		case "outputDir":
			cfg.OutputDir = value
		default:
			return fmt.Errorf("unknown config override: %s", key)
		}
	}
	return nil
}
