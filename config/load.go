package config

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides, e.g. MINIHTTP_FILES_DIRECTORY.
const EnvPrefix = "MINIHTTP"

// flagKeys maps command-line flags onto config keys.
var flagKeys = map[string]string{
	"directory": "files.directory",
	"store":     "files.store",
	"host":      "net.host",
	"port":      "net.port",
	"workers":   "net.workers",
	"strict":    "http.strict_responses",
	"log-level": "logging.level",
}

// Flags returns the command-line flag set understood by Load.
func Flags() *pflag.FlagSet {
	def := Default()
	flags := pflag.NewFlagSet("minihttp", pflag.ContinueOnError)
	flags.StringP("directory", "d", def.Files.Directory, "directory to serve /files/ from")
	flags.String("store", def.Files.Store, "blob store backend (fs, s3, badger)")
	flags.String("config", "", "path to a config file (yaml, toml or json)")
	flags.String("host", def.NET.Host, "interface to bind to")
	flags.Int("port", def.NET.Port, "port to listen on")
	flags.Int("workers", def.NET.Workers, "number of workers")
	flags.Bool("strict", def.HTTP.StrictResponses, "answer malformed requests with 4xx instead of closing")
	flags.String("log-level", def.Logging.Level, "log level (DEBUG, INFO, WARN, ERROR)")

	return flags
}

// Load builds the config from defaults, the optional file at path, MINIHTTP_* environment
// variables and finally the flags, each one overriding the previous. Flags may be nil.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v, Default())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	if flags != nil {
		for name, key := range flagKeys {
			flag := flags.Lookup(name)
			if flag == nil {
				continue
			}

			if err := v.BindPFlag(key, flag); err != nil {
				return nil, fmt.Errorf("failed to bind flag --%s: %w", name, err)
			}
		}
	}

	cfg := Default()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.Files.Options == nil {
		cfg.Files.Options = make(map[string]any)
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// setDefaults registers every key, otherwise AutomaticEnv wouldn't know about them.
func setDefaults(v *viper.Viper, def *Config) {
	v.SetDefault("net.host", def.NET.Host)
	v.SetDefault("net.port", def.NET.Port)
	v.SetDefault("net.backlog", def.NET.Backlog)
	v.SetDefault("net.workers", def.NET.Workers)
	v.SetDefault("net.read_buffer_size", def.NET.ReadBufferSize)
	v.SetDefault("net.max_request_size", def.NET.MaxRequestSize)
	v.SetDefault("net.read_timeout", def.NET.ReadTimeout)
	v.SetDefault("net.write_timeout", def.NET.WriteTimeout)
	v.SetDefault("files.directory", def.Files.Directory)
	v.SetDefault("files.store", def.Files.Store)
	v.SetDefault("files.options", def.Files.Options)
	v.SetDefault("http.strict_responses", def.HTTP.StrictResponses)
	v.SetDefault("logging.level", def.Logging.Level)
	v.SetDefault("logging.format", def.Logging.Format)
}
