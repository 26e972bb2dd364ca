package app

import (
	"github.com/spf13/cobra"
)

// Options are the persistent flags shared by every command.
type Options struct {
	ConfigPath string
	APIURL     string
	LogLevel   string
	Output     string
}

// BindFlags registers the global flags on the root command.
func (o *Options) BindFlags(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()
	flags.StringVarP(&o.ConfigPath, "config", "c", "", "Path to config file (default: ./config.yaml, ./configs, ~/.helpdesk)")
	flags.StringVar(&o.APIURL, "api-url", "", "API base URL (overrides api.base_url)")
	flags.StringVar(&o.LogLevel, "log-level", "", "Log level: debug, info, warn, error")
	flags.StringVarP(&o.Output, "output", "o", "", "Output format: table, json, yaml")
}
