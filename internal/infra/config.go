package infra

import (
	"errors"
	"fmt"
	"os"

	"github.com/Juskocode/QDSMarketTool/internal/domain"

	"gopkg.in/yaml.v3"
)

// Config holds everything the tool needs for one evaluation run.
// Deployment-specific values can be overridden via environment variables
// after loading.
type Config struct {
	App struct {
		Name    string `yaml:"name"`
		Version string `yaml:"version"`
	} `yaml:"app"`

	Inputs struct {
		MarketsFile  string `yaml:"markets_file"`  // allowlist: "<id> <key> <itemKey>" lines
		ScheduleCSV  string `yaml:"schedule_csv"`  // aggregated token dataset
		DefaultsFile string `yaml:"defaults_file"` // raw schedule definitions, "key=<definition>" lines
		KeyPrefix    string `yaml:"key_prefix"`    // only defaults keys with this prefix are kept
	} `yaml:"inputs"`

	Output struct {
		SenderFile string `yaml:"sender_file"` // zabbix_sender input file
		Host       string `yaml:"host"`        // host column of every sender line
		PerMinute  bool   `yaml:"per_minute"`  // also write per-minute vector files
		StateDB    string `yaml:"state_db"`    // sqlite file holding last-known states
	} `yaml:"output"`

	Calendar struct {
		URL        string `yaml:"url"` // optional remote trading-calendar endpoint
		TimeoutSec int    `yaml:"timeout_sec"`
	} `yaml:"calendar"`

	Logging struct {
		Level string `yaml:"level"`
		File  string `yaml:"file"`
	} `yaml:"logging"`
}

// LoadConfig reads and parses the yaml configuration file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", domain.ErrConfigNotFound, path)
		}
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	overrideWithEnv(&cfg)
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Inputs.KeyPrefix == "" {
		c.Inputs.KeyPrefix = "tv."
	}
	if c.Output.Host == "" {
		c.Output.Host = "MarketSchedule"
	}
	if c.Output.StateDB == "" {
		c.Output.StateDB = "state/market_state.db"
	}
	if c.Calendar.TimeoutSec <= 0 {
		c.Calendar.TimeoutSec = 10
	}
	if c.Logging.File == "" {
		c.Logging.File = "logs/market_schedule.log"
	}
}

// Validate checks configuration validity
func (c *Config) Validate() error {
	if c.Inputs.MarketsFile == "" {
		return &domain.ConfigError{Field: "inputs.markets_file", Err: errors.New("is required")}
	}
	if c.Inputs.ScheduleCSV == "" && c.Inputs.DefaultsFile == "" && c.Calendar.URL == "" {
		return &domain.ConfigError{Field: "inputs", Err: errors.New("at least one schedule source (schedule_csv, defaults_file or calendar url) is required")}
	}
	if c.Output.SenderFile == "" {
		return &domain.ConfigError{Field: "output.sender_file", Err: errors.New("is required")}
	}
	return nil
}

// overrideWithEnv overrides configuration values from environment variables
// when they are set.
func overrideWithEnv(cfg *Config) {
	if url := os.Getenv("MARKET_CALENDAR_URL"); url != "" {
		cfg.Calendar.URL = url
	}
	if db := os.Getenv("MARKET_STATE_DB"); db != "" {
		cfg.Output.StateDB = db
	}
}
