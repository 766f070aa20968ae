package config

import "github.com/spf13/pflag"

var CliArgs *CliConfig

type CliConfig struct {
	ConfigFile string
	Debug      bool
	Version    bool
}

// RegisterFlags binds the global CLI flags to CliArgs.
func RegisterFlags(fs *pflag.FlagSet) {
	if CliArgs != nil {
		panic("already defined")
	}
	CliArgs = &CliConfig{}
	fs.StringVar(&CliArgs.ConfigFile, "config", "", "Path to the config file")
	fs.BoolVarP(&CliArgs.Debug, "debug", "d", false, "Enable debug mode")
	fs.BoolVarP(&CliArgs.Version, "version", "v", false, "Print version and exit")
}
