package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// DefaultDataPath is the dataset read when no file argument is given.
const DefaultDataPath = "data/customer_acquisition_cost_dataset.csv"

// Global configuration structure.
type Global struct {
	DataPath   string `mapstructure:"data_path" yaml:"data_path"`
	SheetName  string `mapstructure:"sheet_name" yaml:"sheet_name"`
	SheetIndex int    `mapstructure:"sheet_index" yaml:"sheet_index"`
	// Charts
	OutputDir     string `mapstructure:"output_dir" yaml:"output_dir"`
	ChartFormat   string `mapstructure:"chart_format" yaml:"chart_format"`
	ChartsEnabled bool   `mapstructure:"charts_enabled" yaml:"charts_enabled"`
	// Analysis
	ZeroPolicy string `mapstructure:"zero_policy" yaml:"zero_policy"`
	SampleRows int    `mapstructure:"sample_rows" yaml:"sample_rows"`

	LogLevel string `mapstructure:"log_level" yaml:"log_level"`
}

func defaultConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".cacscope", "config.yaml"), nil
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.cacscope/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	path := cfgFile
	if path == "" {
		p, err := defaultConfigPath()
		if err != nil {
			return err
		}
		path = p
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: env (including .env) > config file > defaults. Command flags
// are applied on top by the caller.
func Load(cfgFile string) (*Global, error) {
	// optional .env in the working directory; real env vars win
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("CACSCOPE")
	v.AutomaticEnv()

	v.SetDefault("data_path", DefaultDataPath)
	v.SetDefault("sheet_name", "")
	v.SetDefault("sheet_index", 1)
	v.SetDefault("output_dir", "")
	v.SetDefault("chart_format", "html")
	v.SetDefault("charts_enabled", true)
	v.SetDefault("zero_policy", "propagate")
	v.SetDefault("sample_rows", 5)
	v.SetDefault("log_level", "info")

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		path, err := defaultConfigPath()
		if err != nil {
			return nil, err
		}
		v.AddConfigPath(filepath.Dir(path))
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	// optional read
	_ = v.ReadInConfig()

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &c, nil
}
