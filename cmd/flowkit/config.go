package main

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// Config holds all flowkit CLI configuration.
// Priority: env vars > settings.json > defaults.
type Config struct {
	DBPath       string `json:"db_path"`
	LogLevel     string `json:"log_level"`
	AgentCommand string `json:"agent_command"`
	PersistRuns  bool   `json:"persist_runs"`
}

func defaultConfig() Config {
	return Config{
		DBPath:      filepath.Join(flowkitDir(), "flowkit.db"),
		LogLevel:    "info",
		PersistRuns: true,
	}
}

func flowkitDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".flowkit"
	}
	return filepath.Join(home, ".flowkit")
}

func settingsPath() string {
	return filepath.Join(flowkitDir(), "settings.json")
}

func loadConfig() Config {
	cfg := defaultConfig()

	// Layer 2: settings.json (ignore if missing).
	if data, err := os.ReadFile(settingsPath()); err == nil {
		_ = json.Unmarshal(data, &cfg)
	}

	// Layer 3: env vars override.
	if v := os.Getenv("FLOWKIT_DB_PATH"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("FLOWKIT_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("FLOWKIT_AGENT_COMMAND"); v != "" {
		cfg.AgentCommand = v
	}
	if v := os.Getenv("FLOWKIT_PERSIST_RUNS"); v != "" {
		cfg.PersistRuns = v == "true" || v == "1"
	}

	return cfg
}
