package config

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

type Config struct {
	Server     Server
	HTTP       HTTP
	Bun        BunConfig
	Redis      RedisConfig
	Limits     Limits
	LoggerMode LoggerMode
}

type Server struct {
	Host string
	Port string

	// MaxRequestBytes caps how many bytes a single request may carry.
	// -1 disables the ceiling entirely; this is an explicit choice, not
	// a fallback.
	MaxRequestBytes    int64 `mapstructure:"max_request_bytes"`
	ReadTimeoutSeconds int   `mapstructure:"read_timeout_seconds"`
}

type HTTP struct {
	Enabled bool
	Host    string
	Port    string
}

type BunConfig struct {
	// Driver selects the storage backend: "postgres" or "sqlite".
	Driver string
	DSN    string
}

type RedisConfig struct {
	Enabled    bool
	Addr       string
	TTLSeconds int `mapstructure:"ttl_seconds"`
}

type Limits struct {
	// MaxPayloadBytes bounds the ciphertext of a single message. 0 leaves
	// payloads bounded only by the request ceiling.
	MaxPayloadBytes int `mapstructure:"max_payload_bytes"`
}

type LoggerMode struct {
	Development bool
	Prod        bool
	Level       string
}

const defaultConfig = `server:
  host: 0.0.0.0
  port: "8472"
  # -1 removes the request size ceiling entirely.
  max_request_bytes: 4096
  read_timeout_seconds: 30

http:
  enabled: true
  host: 0.0.0.0
  port: "8473"

bun:
  driver: sqlite
  dsn: file:cryptcord.db?cache=shared

redis:
  enabled: false
  addr: localhost:6379
  ttl_seconds: 300

limits:
  max_payload_bytes: 0

loggermode:
  development: true
  prod: false
  level: debug
`

func LoadConfig(filename string) (*viper.Viper, error) {
	v := viper.New()

	v.SetConfigName(filename)
	v.SetConfigType("yaml")
	v.AddConfigPath("config")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// First run: write a config file holding the defaults, then
			// load it so the file and the running server always agree.
			if err := writeDefaultConfig(filename); err != nil {
				return nil, err
			}
			if err := v.ReadInConfig(); err != nil {
				return nil, err
			}
			return v, nil
		}
		return nil, err
	}
	return v, nil
}

func ParseConfig(v *viper.Viper) (*Config, error) {
	var c Config
	err := v.Unmarshal(&c)
	if err != nil {
		slog.Error("Unable to unmarshal config", "err", err)
		return nil, err
	}
	return &c, nil
}

func writeDefaultConfig(filename string) error {
	if err := os.MkdirAll("config", 0o755); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join("config", filename+".yaml"), []byte(defaultConfig), 0o644)
}
