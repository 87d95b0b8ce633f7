package config

import (
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
)

// Blob store backends serving the /files routes.
const (
	StoreFS     = "fs"
	StoreS3     = "s3"
	StoreBadger = "badger"
)

type (
	NET struct {
		// Host is the interface to bind to. 0.0.0.0 stands for all of them.
		Host string `mapstructure:"host" validate:"required"`
		// Port to listen on. 0 picks an ephemeral one.
		Port int `mapstructure:"port" validate:"gte=0,lte=65535"`
		// Backlog is the depth of the kernel queue of not yet accepted connections.
		Backlog int `mapstructure:"backlog" validate:"gte=1"`
		// Workers is the number of goroutines, each of them accepting and serving
		// one connection at a time.
		Workers int `mapstructure:"workers" validate:"gte=1"`
		// ReadBufferSize is how many bytes are requested by a single read from socket.
		ReadBufferSize int `mapstructure:"read_buffer_size" validate:"gte=16"`
		// MaxRequestSize limits the request head (start line and headers). Requests not
		// terminated within this limit are rejected.
		MaxRequestSize int `mapstructure:"max_request_size" validate:"gtefield=ReadBufferSize"`
		// ReadTimeout bounds every single read. 0 disables it.
		ReadTimeout time.Duration `mapstructure:"read_timeout" validate:"gte=0"`
		// WriteTimeout bounds sending the response. 0 disables it.
		WriteTimeout time.Duration `mapstructure:"write_timeout" validate:"gte=0"`
	}

	Files struct {
		// Directory is the root the /files/ routes are resolved against. For the badger
		// store it's the database directory instead.
		Directory string `mapstructure:"directory"`
		// Store selects the backend.
		Store string `mapstructure:"store" validate:"required,oneof=fs s3 badger"`
		// Options are backend specific, see the Options type of every store.
		Options map[string]any `mapstructure:"options"`
	}

	HTTP struct {
		// StrictResponses makes the server answer malformed requests and missing required
		// headers with 4xx responses instead of silently closing the connection.
		StrictResponses bool `mapstructure:"strict_responses"`
	}

	Logging struct {
		Level  string `mapstructure:"level" validate:"required,oneof=DEBUG INFO WARN ERROR debug info warn error"`
		Format string `mapstructure:"format" validate:"required,oneof=text json"`
	}
)

// Config is built once at startup and is read-only afterward, so it's safe to share it
// between all the workers.
type Config struct {
	NET     NET     `mapstructure:"net"`
	Files   Files   `mapstructure:"files"`
	HTTP    HTTP    `mapstructure:"http"`
	Logging Logging `mapstructure:"logging"`
}

// Default returns default config.
func Default() *Config {
	return &Config{
		NET: NET{
			Host:           "0.0.0.0",
			Port:           4221,
			Backlog:        5,
			Workers:        10,
			ReadBufferSize: 1024,
			// start line and headers only, as bodies are never read. 8kb is what most
			// of the servers out there allow as well.
			MaxRequestSize: 8 * 1024,
			ReadTimeout:    30 * time.Second,
			WriteTimeout:   30 * time.Second,
		},
		Files: Files{
			Store:   StoreFS,
			Options: make(map[string]any),
		},
		Logging: Logging{
			Level:  "INFO",
			Format: "text",
		},
	}
}

// String renders the config as JSON. Values of options that look like secrets are masked.
func (c *Config) String() string {
	printable := *c
	printable.Files.Options = make(map[string]any, len(c.Files.Options))
	for key, value := range c.Files.Options {
		if isSecret(key) {
			value = "******"
		}

		printable.Files.Options[key] = value
	}

	text, err := jsoniter.ConfigCompatibleWithStandardLibrary.MarshalToString(printable)
	if err != nil {
		return "<unprintable config: " + err.Error() + ">"
	}

	return text
}

func isSecret(key string) bool {
	key = strings.ToLower(key)
	return strings.Contains(key, "secret") || strings.Contains(key, "password") ||
		strings.Contains(key, "token")
}
