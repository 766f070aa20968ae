package config

import "time"

// FixtureConfig holds the user and structure the smoke test creates.
type FixtureConfig struct {
	FullName      string `mapstructure:"full_name"`
	Email         string `mapstructure:"email"`
	Password      string `mapstructure:"password"`
	StructureName string `mapstructure:"structure_name"`
}

// Config holds the application configuration.
type Config struct {
	BaseURL       string        `mapstructure:"base_url"`
	Timeout       time.Duration `mapstructure:"timeout"`
	ListenAddress string        `mapstructure:"listen_address"`
	Database      string        `mapstructure:"database"`
	Fixture       FixtureConfig `mapstructure:"fixture"`
}
