package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/spf13/viper"
)

// The global, read-only config variable.
var (
	cfg  *Config
	once sync.Once
)

const (
	DefaultBaseURL       = "http://127.0.0.1:5000"
	DefaultListenAddress = "127.0.0.1:5000"
	DefaultTimeout       = 30 * time.Second
)

// LoadConfig reads the optional config file and the APIPROBE_* environment, parses
// them, and initializes the global cfg variable. It ensures that the configuration
// is set only once.
func LoadConfig(configFile string) (*Config, error) {
	var err error
	once.Do(func() {
		viper.SetDefault("base_url", DefaultBaseURL)
		viper.SetDefault("timeout", DefaultTimeout)
		viper.SetDefault("listen_address", DefaultListenAddress)
		viper.SetDefault("database", "apiprobe.db")
		viper.SetDefault("fixture.full_name", "John Scientist")
		viper.SetDefault("fixture.email", "john@example.com")
		viper.SetDefault("fixture.password", "secure123")
		viper.SetDefault("fixture.structure_name", "Water Molecule")

		viper.SetEnvPrefix("apiprobe")
		viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
		viper.AutomaticEnv()

		if configFile != "" {
			viper.SetConfigFile(configFile)
			viper.SetConfigType("yaml")
			if err = viper.ReadInConfig(); err != nil {
				err = fmt.Errorf("error reading config file: %w", err)
				return
			}
		}

		// Unmarshal the config into the Config struct
		var configuration Config
		if err = viper.Unmarshal(&configuration); err != nil {
			err = fmt.Errorf("error unmarshaling config: %w", err)
			return
		}

		if err = validate(&configuration); err != nil {
			return
		}
		configuration.BaseURL = strings.TrimRight(configuration.BaseURL, "/")

		cfg = &configuration
	})

	if err != nil {
		return nil, err
	}

	if cfg == nil {
		return nil, errors.New("configuration was not set")
	}

	return cfg, nil
}

func validate(c *Config) error {
	if c.BaseURL == "" {
		return errors.New("base_url is required")
	}
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid base_url %q: %w", c.BaseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid base_url %q: scheme must be http or https", c.BaseURL)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative, got %s", c.Timeout)
	}
	if c.Fixture.Email == "" {
		return errors.New("fixture.email is required")
	}
	return nil
}

// GetConfig returns the loaded configuration.
// It panics if the configuration has not been set.
func GetConfig() *Config {
	if cfg == nil {
		panic("Config has not been set! Call LoadConfig first.")
	}
	return cfg
}
