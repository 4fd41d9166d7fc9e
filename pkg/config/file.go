package config

import (
	"fmt"
	"strings"
	"text/template"
)

var configFileTmpl = template.Must(template.New("config").Parse(`# feewise configuration.

# The name of the registry.
name: "{{ .Name }}"

# Logging configuration.
log:
  # Log format to use. Valid values are "json", "logfmt", and "text".
  format: "{{ .Log.Format }}"

  # Time format for the log "timestamp" field.
  # Should be described in Golang's time format.
  time_format: "{{ .Log.TimeFormat }}"

  # Path to the log file. Leave empty to write to stderr.
  #path: "{{ .Log.Path }}"

# The database configuration.
db:
  # The database driver to use.
  # Valid values are "sqlite" and "postgres".
  driver: "{{ .DB.Driver }}"

  # The database data source name.
  # This is driver specific and can be a file path or connection string.
  data_source: "{{ .DB.DataSource }}"

# The stats server configuration.
stats:
  # The address on which the Prometheus stats server will listen.
  listen_addr: "{{ .Stats.ListenAddr }}"

# Cron job configuration.
jobs:
  stats_refresh: "{{ .Jobs.StatsRefresh }}"
`))

// newConfigFile returns the YAML contents of a config file for the given
// config. A nil config renders the defaults.
func newConfigFile(cfg *Config) string {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	var b strings.Builder
	if err := configFileTmpl.Execute(&b, cfg); err != nil {
		panic(fmt.Sprintf("render config file: %v", err))
	}
	return b.String()
}
