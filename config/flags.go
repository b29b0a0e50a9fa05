package config

import (
	"flag"
	"os"
)

var CliArgs *CliConfig

type CliConfig struct {
	ConfigFile string
	Debug      bool
	Version    bool
}

func ParseArgs() {
	if CliArgs != nil {
		panic("already defined")
	}
	CliArgs = &CliConfig{}
	// ExitOnError: Parse exits on bad flags instead of returning.
	newFlagSet(CliArgs).Parse(os.Args[1:])
}

func newFlagSet(args *CliConfig) *flag.FlagSet {
	fs := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	fs.StringVar(&args.ConfigFile, "config", "", "Path to a yaml or .env config file")
	fs.BoolVar(&args.Debug, "d", false, "Enable debug mode")
	fs.BoolVar(&args.Debug, "debug", false, "Enable debug mode")
	fs.BoolVar(&args.Version, "v", false, "Print version and exit")
	return fs
}
