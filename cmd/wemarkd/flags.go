package main

import (
	flag "github.com/spf13/pflag"
)

// serverFlags holds command-line overrides for the YAML config.
type serverFlags struct {
	config  string
	listen  string
	dataDir string
	apiKeys string
	workers int
	verbose bool
}

// parseFlags parses command-line arguments.
func parseFlags(args []string) (*serverFlags, error) {
	fs := flag.NewFlagSet("wemarkd", flag.ContinueOnError)

	f := &serverFlags{}
	fs.StringVarP(&f.config, "config", "c", "wemark.yaml", "path to YAML config file")
	fs.StringVarP(&f.listen, "listen", "l", "", "HTTP listen address (overrides config)")
	fs.StringVar(&f.dataDir, "data-dir", "", "data directory for the theme store (overrides config)")
	fs.StringVar(&f.apiKeys, "api-keys", "", "path to API key file, one key per line (overrides config)")
	fs.IntVarP(&f.workers, "workers", "w", 0, "renderer pool size, 0 = auto")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "verbose logging")

	if err := fs.Parse(args[1:]); err != nil {
		return nil, err
	}
	return f, nil
}
