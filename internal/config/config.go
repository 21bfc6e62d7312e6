// Package config loads the game configuration from config.yaml.
package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds all game configuration values
type Config struct {
	Display    DisplayConfig    `yaml:"display"`
	Graphics   GraphicsConfig   `yaml:"graphics"`
	Movement   MovementConfig   `yaml:"movement"`
	Simulation SimulationConfig `yaml:"simulation"`
}

type DisplayConfig struct {
	ScreenWidth  int    `yaml:"screen_width"`
	ScreenHeight int    `yaml:"screen_height"`
	WindowScale  int    `yaml:"window_scale"`
	WindowTitle  string `yaml:"window_title"`
	Resizable    bool   `yaml:"resizable"`
}

type GraphicsConfig struct {
	// Vertical stretch applied during projection. The classic look renders
	// a 320x200 frame on a 4:3 display, squashing the projection by 200/240.
	AspectRatioCorrection float64 `yaml:"aspect_ratio_correction"`
	ShowStats             bool    `yaml:"show_stats"`
}

type MovementConfig struct {
	MoveSpeed     float64 `yaml:"move_speed"`     // map units per tick
	RotationSpeed float64 `yaml:"rotation_speed"` // radians per tick
}

type SimulationConfig struct {
	RandomSeed int64 `yaml:"random_seed"`
}

var GlobalConfig *Config

// LoadConfig loads the configuration from config.yaml
func LoadConfig(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	config := defaultConfig()
	err = yaml.Unmarshal(data, config)
	if err != nil {
		return nil, err
	}

	// Set global config for easy access
	GlobalConfig = config

	return config, nil
}

// MustLoadConfig loads the configuration and panics on error
func MustLoadConfig(filename string) *Config {
	config, err := LoadConfig(filename)
	if err != nil {
		panic("Failed to load config: " + err.Error())
	}
	return config
}

func defaultConfig() *Config {
	return &Config{
		Display: DisplayConfig{
			ScreenWidth:  320,
			ScreenHeight: 200,
			WindowScale:  3,
			WindowTitle:  "Nocturne",
		},
		Graphics: GraphicsConfig{
			AspectRatioCorrection: 200.0 / 240.0,
		},
		Movement: MovementConfig{
			MoveSpeed:     8.0,
			RotationSpeed: 0.06,
		},
		Simulation: SimulationConfig{
			RandomSeed: 1993,
		},
	}
}

// Helper functions for easy access to commonly used values
func (c *Config) GetScreenWidth() int {
	return c.Display.ScreenWidth
}

func (c *Config) GetScreenHeight() int {
	return c.Display.ScreenHeight
}

func (c *Config) GetAspectCorrection() float64 {
	if c.Graphics.AspectRatioCorrection <= 0 {
		return 200.0 / 240.0
	}
	return c.Graphics.AspectRatioCorrection
}

func (c *Config) GetMoveSpeed() float64 {
	return c.Movement.MoveSpeed
}

func (c *Config) GetRotSpeed() float64 {
	return c.Movement.RotationSpeed
}

func (c *Config) GetRandomSeed() int64 {
	return c.Simulation.RandomSeed
}
