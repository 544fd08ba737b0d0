package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	App struct {
		Port      int    `yaml:"port"`
		DataPath  string `yaml:"data_path"`
		UIEnabled bool   `yaml:"ui_enabled"`
		Debug     bool   `yaml:"debug"`
	} `yaml:"app"`

	Catalog struct {
		// Cron expression for the periodic catalog census.
		CensusInterval string `yaml:"census_interval"`
		// Watch the data directory and push change events to clients.
		WatchEnabled bool `yaml:"watch_enabled"`
	} `yaml:"catalog"`

	Notifications struct {
		// Pushbullet API key. Empty disables notifications.
		PushbulletKey string `yaml:"pushbullet_key"`
	} `yaml:"notifications"`
}

func Load(path string) (*Config, error) {
	cfg := &Config{}
	setDefaults(cfg)

	if _, err := os.Stat(path); err == nil {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, err
		}
	}

	loadFromEnv(cfg)
	return cfg, nil
}

func setDefaults(cfg *Config) {
	cfg.App.Port = 3000
	cfg.App.DataPath = "./data"
	cfg.App.UIEnabled = true
	cfg.App.Debug = false

	cfg.Catalog.CensusInterval = "@every 1h"
	cfg.Catalog.WatchEnabled = true
}

func loadFromEnv(cfg *Config) {
	// A .env file is optional; real environment variables win either way.
	_ = godotenv.Load()

	if v := os.Getenv("PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.App.Port = port
		}
	}
	if v := os.Getenv("MARQUEE_DEBUG"); v != "" {
		cfg.App.Debug = v == "1" || v == "true"
	}
	if v := os.Getenv("MARQUEE_DATA_PATH"); v != "" {
		cfg.App.DataPath = v
	}
	if v := os.Getenv("MARQUEE_PUSHBULLET_KEY"); v != "" {
		cfg.Notifications.PushbulletKey = v
	}
}
