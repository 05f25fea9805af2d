package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/viper"
)

// Data sources
const (
	SourceJSON   = "json"
	SourceSQLite = "sqlite"
)

// Config holds all configuration for the application
type Config struct {
	Log    LogConfig    `mapstructure:"log"`
	Data   DataConfig   `mapstructure:"data"`
	Rhyme  RhymeConfig  `mapstructure:"rhyme"`
	Import ImportConfig `mapstructure:"import"`
	Search SearchConfig `mapstructure:"search"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Debug bool `mapstructure:"debug"`
}

// DataConfig holds corpus location configuration
type DataConfig struct {
	Dir        string `mapstructure:"dir"`         // directory with pingshui.json, cilin.json and cipai/
	Source     string `mapstructure:"source"`      // json or sqlite
	SQLitePath string `mapstructure:"sqlite_path"` // precompiled corpus written by `rhythm import`
}

// RhymeConfig holds checking defaults
type RhymeConfig struct {
	Book        int  `mapstructure:"book"` // 1 平水韵, 2 中华新韵, 3 中华通韵
	Pu          int  `mapstructure:"pu"`   // 1 钦谱, 2 龙谱
	Traditional bool `mapstructure:"traditional"`
}

// ImportConfig holds import pipeline configuration
type ImportConfig struct {
	Workers         int `mapstructure:"workers"` // 0 means one per CPU
	BatchSize       int `mapstructure:"batch_size"`
	TransactionSize int `mapstructure:"transaction_size"`
}

// SearchConfig holds template search configuration
type SearchConfig struct {
	MaxResults      int  `mapstructure:"max_results"`
	DefaultPageSize int  `mapstructure:"default_page_size"`
	EnablePinyin    bool `mapstructure:"enable_pinyin"`
}

// Load loads configuration from file and environment variables
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Set defaults
	setDefaults(v)

	// Read config file if provided
	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Override with environment variables
	bindEnvVars(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.debug", false)
	v.SetDefault("data.dir", "data")
	v.SetDefault("data.source", SourceJSON)
	v.SetDefault("data.sqlite_path", "rhythm.db")
	v.SetDefault("rhyme.book", 1)
	v.SetDefault("rhyme.pu", 1)
	v.SetDefault("rhyme.traditional", false)
	v.SetDefault("import.workers", 0)
	v.SetDefault("import.batch_size", 500)
	v.SetDefault("import.transaction_size", 200)
	v.SetDefault("search.max_results", 100)
	v.SetDefault("search.default_page_size", 20)
	v.SetDefault("search.enable_pinyin", true)
}

func bindEnvVars(v *viper.Viper) {
	if debug := os.Getenv("RHYTHM_DEBUG"); debug != "" {
		v.Set("log.debug", debug == "true")
	}

	// Data
	if dir := os.Getenv("RHYTHM_DATA_DIR"); dir != "" {
		v.Set("data.dir", dir)
	}
	if source := os.Getenv("RHYTHM_DATA_SOURCE"); source != "" {
		v.Set("data.source", source)
	}
	if path := os.Getenv("RHYTHM_SQLITE_PATH"); path != "" {
		v.Set("data.sqlite_path", path)
	}

	// Rhyme
	if book := os.Getenv("RHYTHM_BOOK"); book != "" {
		if b, err := strconv.Atoi(book); err == nil {
			v.Set("rhyme.book", b)
		}
	}
	if pu := os.Getenv("RHYTHM_PU"); pu != "" {
		if p, err := strconv.Atoi(pu); err == nil {
			v.Set("rhyme.pu", p)
		}
	}
	if traditional := os.Getenv("RHYTHM_TRADITIONAL"); traditional != "" {
		v.Set("rhyme.traditional", traditional == "true")
	}

	// Import
	if workers := os.Getenv("RHYTHM_IMPORT_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil {
			v.Set("import.workers", w)
		}
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Data.Source != SourceJSON && c.Data.Source != SourceSQLite {
		return fmt.Errorf("invalid data source: %s (must be 'json' or 'sqlite')", c.Data.Source)
	}

	if c.Data.Source == SourceJSON && c.Data.Dir == "" {
		return fmt.Errorf("data dir cannot be empty")
	}

	if c.Data.Source == SourceSQLite && c.Data.SQLitePath == "" {
		return fmt.Errorf("sqlite path cannot be empty")
	}

	if c.Rhyme.Book < 1 || c.Rhyme.Book > 3 {
		return fmt.Errorf("invalid rhyme book: %d (must be 1, 2 or 3)", c.Rhyme.Book)
	}

	if c.Rhyme.Pu != 1 && c.Rhyme.Pu != 2 {
		return fmt.Errorf("invalid template collection: %d (must be 1 or 2)", c.Rhyme.Pu)
	}

	if c.Import.Workers < 0 {
		return fmt.Errorf("import workers cannot be negative")
	}

	if c.Import.BatchSize <= 0 {
		return fmt.Errorf("import batch_size must be positive")
	}

	if c.Search.MaxResults <= 0 {
		return fmt.Errorf("search max_results must be positive")
	}

	return nil
}
