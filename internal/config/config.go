package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
	"github.com/spf13/pflag"
)

// Config is the complete process configuration. It is loaded once at startup
// and passed explicitly to the components that need it.
type Config struct {
	Env         string       `koanf:"env"`
	AppName     string       `koanf:"app_name"`
	Port        string       `koanf:"port"`
	LogLevel    string       `koanf:"log_level"`
	DatabaseURL string       `koanf:"database_url"`
	Tokens      TokensConfig `koanf:"tokens"`
	Cors        Cors         `koanf:"cors"`
	Google      GoogleConfig `koanf:"google"`
	Media       MediaConfig  `koanf:"media"`
}

// TokensConfig holds the signing secrets and lifetimes of the two token classes.
// Lifetimes are kept as strings so "7d" style values keep working.
type TokensConfig struct {
	AccessSecret  string `koanf:"access_secret"`
	RefreshSecret string `koanf:"refresh_secret"`
	AccessLife    string `koanf:"access_life"`
	RefreshLife   string `koanf:"refresh_life"`
	Issuer        string `koanf:"issuer"`
}

// GoogleConfig enables federated login when ClientID is set.
type GoogleConfig struct {
	ClientID     string `koanf:"client_id"`
	ClientSecret string `koanf:"client_secret"`
	RedirectURL  string `koanf:"redirect_url"`
}

// Enabled reports whether federated login is configured.
func (g GoogleConfig) Enabled() bool {
	return g.ClientID != ""
}

// MediaConfig configures the S3 bucket used for uploads.
type MediaConfig struct {
	Bucket        string `koanf:"bucket"`
	Region        string `koanf:"region"`
	Endpoint      string `koanf:"endpoint"`
	AccessKey     string `koanf:"access_key"`
	SecretKey     string `koanf:"secret_key"`
	PublicBaseURL string `koanf:"public_base_url"`
}

// Enabled reports whether upload presigning is configured.
func (m MediaConfig) Enabled() bool {
	return m.Bucket != ""
}

// Load builds the configuration from the flag defaults, an optional YAML file
// and any flags explicitly set on the command line, in that order of precedence
// (explicit flags win).
func Load(fs *pflag.FlagSet, path string) (*Config, error) {
	k := koanf.New(".")

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, errors.Wrapf(err, "config.Load file %s", path)
		}
	}

	if fs != nil {
		provider := posflag.ProviderWithFlag(fs, ".", k, func(f *pflag.Flag) (string, interface{}) {
			key, ok := flagKeys[f.Name]
			if !ok {
				return "", nil
			}
			return key, posflag.FlagVal(fs, f)
		})
		if err := k.Load(provider, nil); err != nil {
			return nil, errors.Wrap(err, "config.Load flags")
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, errors.Wrap(err, "config.Load unmarshal")
	}
	return &cfg, nil
}

// Validate checks the settings that are required at process start.
func (c *Config) Validate() error {
	var missing []string
	if c.Tokens.AccessSecret == "" {
		missing = append(missing, "tokens.access_secret (ACCESS_TOKEN_SECRET)")
	}
	if c.Tokens.RefreshSecret == "" {
		missing = append(missing, "tokens.refresh_secret (REFRESH_TOKEN_SECRET)")
	}
	if c.Tokens.AccessLife == "" {
		missing = append(missing, "tokens.access_life (ACCESS_TOKEN_LIFE)")
	}
	if c.Tokens.RefreshLife == "" {
		missing = append(missing, "tokens.refresh_life (REFRESH_TOKEN_LIFE)")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration: %s", strings.Join(missing, ", "))
	}

	if _, err := c.AccessTokenLifetime(); err != nil {
		return err
	}
	if _, err := c.RefreshTokenLifetime(); err != nil {
		return err
	}
	if c.Tokens.AccessSecret == c.Tokens.RefreshSecret {
		return errors.New("access and refresh token secrets must differ")
	}
	return nil
}

// AccessTokenLifetime parses tokens.access_life.
func (c *Config) AccessTokenLifetime() (time.Duration, error) {
	d, err := ParseLifetime(c.Tokens.AccessLife)
	if err != nil {
		return 0, errors.Wrap(err, "tokens.access_life")
	}
	return d, nil
}

// RefreshTokenLifetime parses tokens.refresh_life.
func (c *Config) RefreshTokenLifetime() (time.Duration, error) {
	d, err := ParseLifetime(c.Tokens.RefreshLife)
	if err != nil {
		return 0, errors.Wrap(err, "tokens.refresh_life")
	}
	return d, nil
}

func (c *Config) GetPort() string {
	port := c.Port
	if port == "" {
		port = "5000"
	}
	if port[0] != ':' {
		port = ":" + port
	}
	return port
}

func (c *Config) GetAppName() string {
	return c.AppName
}

func (c *Config) GetEnv() string {
	if c.Env == "" {
		return "DEV"
	}
	return strings.ToUpper(c.Env)
}

func (c *Config) IsDev() bool {
	return c.GetEnv() == "DEV"
}
