// Package hostconfig loads the configuration for the simulation host:
// listen address, default run settings, and where run summaries are
// persisted.
package hostconfig

import (
	"math"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config is the fully resolved host configuration.
type Config struct {
	AppName  string `mapstructure:"app_name"`
	LogLevel string `mapstructure:"log_level"`

	Server ServerConfig `mapstructure:"server"`
	Run    RunConfig    `mapstructure:"run"`
	Store  StoreConfig  `mapstructure:"store"`
}

// ServerConfig holds the HTTP control-surface configuration.
type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

// RunConfig holds the default engine Settings a new run starts with.
type RunConfig struct {
	YieldEveryN     uint64 `mapstructure:"yield_every_n"`
	YieldDurationMs uint64 `mapstructure:"yield_duration_ms"`
	MaxIter         uint64 `mapstructure:"max_iter"`
}

// StoreConfig holds where persisted state lives on disk.
type StoreConfig struct {
	DataDir string `mapstructure:"data_dir"`
}

// Load reads configuration from a YAML file (if configPath names one or
// ./config.yaml exists), layered over built-in defaults, then applies
// DES_SERVER_PORT if set. Other DES_-prefixed environment variables are
// read only for top-level keys that the config file itself sets; nested
// keys such as server.host are not overridable from the environment.
func Load(configPath string) (*Config, error) {
	_ = godotenv.Load()

	config := &Config{
		AppName:  "desengine-host",
		LogLevel: "info",
		Server: ServerConfig{
			Host: "127.0.0.1",
			Port: 8080,
		},
		Run: RunConfig{
			YieldEveryN:     5000,
			YieldDurationMs: 100,
			MaxIter:         math.MaxUint64,
		},
		Store: StoreConfig{
			DataDir: "./data",
		},
	}

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	if configPath != "" {
		if filepath.IsAbs(configPath) {
			viper.SetConfigFile(configPath)
		} else {
			viper.AddConfigPath(filepath.Dir(configPath))
			ext := filepath.Ext(configPath)
			viper.SetConfigName(filepath.Base(configPath[:len(configPath)-len(ext)]))
		}
	}
	viper.AddConfigPath(".")
	viper.AddConfigPath("./configs")
	viper.AddConfigPath("/etc/desengine-host")

	viper.SetEnvPrefix("DES")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	if err := viper.Unmarshal(config); err != nil {
		return nil, err
	}

	if port := os.Getenv("DES_SERVER_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}

	return config, nil
}
