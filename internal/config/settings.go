// Package config handles connection settings for the reolink CLI. Settings
// come from three layers with flags winning over environment variables
// winning over the config file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Environment variables recognized for connection settings.
const (
	EnvHost     = "REOLINK_HOST"
	EnvUser     = "REOLINK_USER"
	EnvPassword = "REOLINK_PASS"
	EnvChannel  = "REOLINK_CHANNEL"
)

// Settings holds the camera connection parameters.
type Settings struct {
	Host           string `yaml:"host"`
	Username       string `yaml:"username"`
	Password       string `yaml:"password"`
	Channel        int    `yaml:"channel"`
	TimeoutSeconds int    `yaml:"timeout"`
	LogFile        string `yaml:"log_file"`
}

// DefaultPath returns the default configuration file path, honoring the
// platform's user config directory.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "reolink", "config.yaml")
}

// Load reads settings from the given config file and applies environment
// variable overrides. A missing file is not an error; the zero settings are
// returned and the environment still applies. An explicitly requested file
// that cannot be read is an error.
func Load(path string, explicit bool) (Settings, error) {
	var settings Settings

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, &settings); err != nil {
				return Settings{}, fmt.Errorf("parse config file %s: %w", path, err)
			}
		case os.IsNotExist(err) && !explicit:
			// Default path absent, carry on with env and flags.
		default:
			return Settings{}, fmt.Errorf("read config file %s: %w", path, err)
		}
	}

	settings.applyEnv()
	return settings, nil
}

func (s *Settings) applyEnv() {
	if v := os.Getenv(EnvHost); v != "" {
		s.Host = v
	}
	if v := os.Getenv(EnvUser); v != "" {
		s.Username = v
	}
	if v := os.Getenv(EnvPassword); v != "" {
		s.Password = v
	}
	if v := os.Getenv(EnvChannel); v != "" {
		if ch, err := strconv.Atoi(v); err == nil {
			s.Channel = ch
		}
	}
}
