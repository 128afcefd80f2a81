package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"wheelmon/monitor"
)

// Config represents the optional wheelmon configuration file.
type Config struct {
	Monitor MonitorConfig `toml:"monitor"`
	Host    HostConfig    `toml:"host"`
}

// MonitorConfig holds chart settings. Unset keys keep the defaults.
type MonitorConfig struct {
	Variant         *string `toml:"variant"`
	Manual          *bool   `toml:"manual"`
	Scale           *bool   `toml:"scale"`
	Axis            *string `toml:"axis"`
	Width           *int    `toml:"width"`
	Height          *int    `toml:"height"`
	BarColor        *string `toml:"bar_color"`
	BackgroundColor *string `toml:"background_color"`
	ZIndex          *int    `toml:"z_index"`
	ClassName       *string `toml:"class_name"`
}

// HostConfig holds runner options.
type HostConfig struct {
	HUD        *bool    `toml:"hud"`
	WheelScale *float64 `toml:"wheel_scale"`
	Hz         *int     `toml:"hz"`
}

// Path returns the resolved path to the config file.
func Path() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "wheelmon", "config.toml")
}

// Load reads the config file from the XDG path. Returns a zero Config
// (no error) if the file does not exist.
func Load() (Config, error) {
	path := Path()
	if path == "" {
		return Config{}, nil
	}
	cfg, err := LoadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return Config{}, nil
	}
	return cfg, err
}

// LoadFile reads an explicit config file. A missing file is an error.
func LoadFile(path string) (Config, error) {
	var cfg Config
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Config{}, err
		}
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("config: %s: unknown key %q", path, undecoded[0].String())
	}
	return cfg, nil
}

// Apply copies every set key onto s.
func (c MonitorConfig) Apply(s *monitor.Settings) error {
	if c.Manual != nil {
		s.Manual = *c.Manual
	}
	if c.Scale != nil {
		s.Scale = *c.Scale
	}
	if c.Axis != nil {
		s.Axis = monitor.Axis(*c.Axis)
	}
	if c.Width != nil {
		s.Width = *c.Width
	}
	if c.Height != nil {
		s.Height = *c.Height
	}
	if c.BarColor != nil {
		col, err := monitor.ParseColor(*c.BarColor)
		if err != nil {
			return fmt.Errorf("config: bar_color: %w", err)
		}
		s.BarColor = col
	}
	if c.BackgroundColor != nil {
		col, err := monitor.ParseColor(*c.BackgroundColor)
		if err != nil {
			return fmt.Errorf("config: background_color: %w", err)
		}
		s.BackgroundColor = col
	}
	if c.ZIndex != nil {
		s.ZIndex = *c.ZIndex
	}
	if c.ClassName != nil {
		s.ClassName = *c.ClassName
	}
	return nil
}
