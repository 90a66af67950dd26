package config

import (
	"errors"
	"io/fs"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Port        string   `yaml:"port"`
		CORSOrigins []string `yaml:"cors_origins"`
	} `yaml:"server"`
	Quiz struct {
		Size        int    `yaml:"size"`
		Duration    string `yaml:"duration"`
		ResultLabel string `yaml:"result_label"`
		HomeLabel   string `yaml:"home_label"`
		HomePath    string `yaml:"home_path"`
		BankFile    string `yaml:"bank_file"`
		BankURL     string `yaml:"bank_url"`
		ReportURL   string `yaml:"report_url"`
		BankTTL     string `yaml:"bank_ttl"`
	} `yaml:"quiz"`
	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
		TTL      string `yaml:"ttl"`
		MaxMarks int64  `yaml:"max_marks"`
	} `yaml:"redis"`
	Postgres struct {
		URL string `yaml:"url"`
	} `yaml:"postgres"`
	SQLite struct {
		Path string `yaml:"path"`
	} `yaml:"sqlite"`
}

// Default is the configuration used for anything the YAML file leaves out.
func Default() Config {
	cfg := Config{}
	cfg.Server.Port = "8080"
	cfg.Quiz.Size = 20
	cfg.Quiz.Duration = "20m"
	cfg.Quiz.ResultLabel = "Score"
	cfg.Quiz.HomeLabel = "Back to home"
	cfg.Quiz.HomePath = "/home"
	cfg.Quiz.BankFile = "static/questions.json"
	cfg.Quiz.BankTTL = "10m"
	cfg.Redis.TTL = "30m"
	cfg.Redis.MaxMarks = 1000
	return cfg
}

// Load reads YAML config from path on top of Default. A missing file yields
// the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Duration parses a duration string or returns the fallback if empty or invalid.
func Duration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	return fallback
}
