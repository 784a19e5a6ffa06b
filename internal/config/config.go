package config

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type Config struct {
	Lexicon   LexiconConfig   `mapstructure:"lexicon"`
	Tokenizer TokenizerConfig `mapstructure:"tokenizer"`
	Server    ServerConfig    `mapstructure:"server"`
	LogLevel  string          `mapstructure:"log_level"`
}

type LexiconConfig struct {
	// Path to a YAML or JSON lexicon file. Empty uses the built-in lexicon.
	Path string `mapstructure:"path"`
	// Mode is how the file combines with the built-in lexicon: replace|extend.
	Mode string `mapstructure:"mode"`
}

type TokenizerConfig struct {
	Normalize         string `mapstructure:"normalize"`
	StrictEntityMatch bool   `mapstructure:"strict_entity_match"`
	// MatchTimeoutMS bounds a single entity pattern match. 0 disables it.
	MatchTimeoutMS    int    `mapstructure:"match_timeout_ms"`
}

type ServerConfig struct {
	ListenAddr      string `mapstructure:"listen_addr"`
	Workers         int    `mapstructure:"workers"`
	MaxTextBytes    int    `mapstructure:"max_text_bytes"`
	RequestTimeout  int    `mapstructure:"request_timeout"`
	ShutdownTimeout int    `mapstructure:"shutdown_timeout"`
	CacheSize       int    `mapstructure:"cache_size"`
}

type LoadOptions struct {
	Cmd        flagBinder
	ConfigFile string
	Defaults   Config
}

type flagBinder interface {
	Flags() *pflag.FlagSet
}

func DefaultConfig() Config {
	return Config{
		Lexicon: LexiconConfig{
			Path: "",
			Mode: LexiconModeExtend,
		},
		Tokenizer: TokenizerConfig{
			Normalize:         UnicodeFormNone,
			StrictEntityMatch: false,
			MatchTimeoutMS:    1000,
		},
		Server: ServerConfig{
			ListenAddr:      ":8080",
			Workers:         4,
			MaxTextBytes:    65536,
			RequestTimeout:  10,
			ShutdownTimeout: 30,
			CacheSize:       1024,
		},
		LogLevel: "info",
	}
}

// flagKeys maps config keys to the flag names RegisterFlags installs.
var flagKeys = map[string]string{
	"lexicon.path":                  "lexicon",
	"lexicon.mode":                  "lexicon-mode",
	"tokenizer.normalize":           "normalize",
	"tokenizer.strict_entity_match": "strict-entity-match",
	"tokenizer.match_timeout_ms":    "match-timeout-ms",
	"server.listen_addr":            "server-listen-addr",
	"server.workers":                "workers",
	"server.max_text_bytes":         "max-text-bytes",
	"server.request_timeout":        "request-timeout",
	"server.shutdown_timeout":       "shutdown-timeout",
	"server.cache_size":             "cache-size",
	"log_level":                     "log-level",
}

func RegisterFlags(fs *pflag.FlagSet, defaults Config) {
	fs.String("lexicon", defaults.Lexicon.Path, "Lexicon file (yaml|json); empty uses the built-in lexicon")
	fs.String("lexicon-mode", defaults.Lexicon.Mode, "How the lexicon file combines with the built-in one (replace|extend)")
	fs.String("normalize", defaults.Tokenizer.Normalize, "Unicode normalization applied to input (nfc|nfkc|none)")
	fs.Bool("strict-entity-match", defaults.Tokenizer.StrictEntityMatch, "Only keep tokens whole when an entity pattern spans the entire token")
	fs.Int("match-timeout-ms", defaults.Tokenizer.MatchTimeoutMS, "Per-pattern match time limit in milliseconds (0 disables it)")
	fs.String("server-listen-addr", defaults.Server.ListenAddr, "HTTP listen address")
	fs.Int("workers", defaults.Server.Workers, "Max concurrent tokenize requests")
	fs.Int("max-text-bytes", defaults.Server.MaxTextBytes, "Max request text size in bytes")
	fs.Int("request-timeout", defaults.Server.RequestTimeout, "Per-request timeout in seconds")
	fs.Int("shutdown-timeout", defaults.Server.ShutdownTimeout, "Graceful shutdown timeout in seconds")
	fs.Int("cache-size", defaults.Server.CacheSize, "Tokenize result cache entries (0 disables the cache)")
	fs.String("log-level", defaults.LogLevel, "Log level (debug|info|warn|error)")
}

func Load(opts LoadOptions) (Config, error) {
	v := viper.New()

	setDefaults(v, opts.Defaults)
	if opts.Cmd != nil {
		if err := bindFlags(v, opts.Cmd.Flags()); err != nil {
			return Config{}, err
		}
	}

	v.SetEnvPrefix("VNTOK")
	replacer := strings.NewReplacer("-", "_", ".", "_", "__", "_")
	v.SetEnvKeyReplacer(replacer)
	if err := v.BindEnv("lexicon.path", "VNTOK_LEXICON_PATH", "VNTOK_LEXICON"); err != nil {
		return Config{}, fmt.Errorf("bind lexicon env vars: %w", err)
	}
	v.AutomaticEnv()

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	} else {
		v.SetConfigName("vntok")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return Config{}, fmt.Errorf("read config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}

	if err := cfg.normalize(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c *Config) normalize() error {
	mode, err := NormalizeLexiconMode(c.Lexicon.Mode)
	if err != nil {
		return err
	}
	c.Lexicon.Mode = mode

	form, err := NormalizeUnicodeForm(c.Tokenizer.Normalize)
	if err != nil {
		return err
	}
	c.Tokenizer.Normalize = form

	return nil
}

func setDefaults(v *viper.Viper, c Config) {
	v.SetDefault("lexicon.path", c.Lexicon.Path)
	v.SetDefault("lexicon.mode", c.Lexicon.Mode)
	v.SetDefault("tokenizer.normalize", c.Tokenizer.Normalize)
	v.SetDefault("tokenizer.strict_entity_match", c.Tokenizer.StrictEntityMatch)
	v.SetDefault("tokenizer.match_timeout_ms", c.Tokenizer.MatchTimeoutMS)
	v.SetDefault("server.listen_addr", c.Server.ListenAddr)
	v.SetDefault("server.workers", c.Server.Workers)
	v.SetDefault("server.max_text_bytes", c.Server.MaxTextBytes)
	v.SetDefault("server.request_timeout", c.Server.RequestTimeout)
	v.SetDefault("server.shutdown_timeout", c.Server.ShutdownTimeout)
	v.SetDefault("server.cache_size", c.Server.CacheSize)
	v.SetDefault("log_level", c.LogLevel)
}

// bindFlags binds each config key to its flag, so a flag set on the command
// line wins over env and file while an unset flag falls through to them.
func bindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	for key, name := range flagKeys {
		f := fs.Lookup(name)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("bind flag %s: %w", name, err)
		}
	}
	return nil
}
