package config

import (
	"io/fs"
	"log/slog"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/ajilantony/copilot-agentops-mcp/internal/errors"
	"github.com/ajilantony/copilot-agentops-mcp/internal/logging"
	"github.com/ajilantony/copilot-agentops-mcp/internal/paths"
)

// EnvPrefix prefixes every environment variable agentops reads.
const EnvPrefix = "AGENTOPS"

// Transport names accepted by server.transport.
const (
	TransportStdio = "stdio"
	TransportHTTP  = "http"
)

// Config is the complete set of recognized options.
type Config struct {
	Repository RepositoryConfig `mapstructure:"repository" yaml:"repository"`
	Cache      CacheConfig      `mapstructure:"cache" yaml:"cache"`
	Fetch      FetchConfig      `mapstructure:"fetch" yaml:"fetch"`
	Install    InstallConfig    `mapstructure:"install" yaml:"install"`
	Server     ServerConfig     `mapstructure:"server" yaml:"server"`
}

// RepositoryConfig locates the remote artifact repository.
type RepositoryConfig struct {
	BaseURL      string `mapstructure:"base_url" yaml:"base_url"`
	Owner        string `mapstructure:"owner" yaml:"owner"`
	Name         string `mapstructure:"name" yaml:"name"`
	Ref          string `mapstructure:"ref" yaml:"ref"`
	MetadataPath string `mapstructure:"metadata_path" yaml:"metadata_path"`
	Token        string `mapstructure:"token" yaml:"token"`
}

// CacheConfig controls the metadata cache.
type CacheConfig struct {
	TTL            time.Duration `mapstructure:"ttl" yaml:"ttl"`
	ContentEntries int           `mapstructure:"content_entries" yaml:"content_entries"`
}

// FetchConfig controls remote requests.
type FetchConfig struct {
	Timeout time.Duration `mapstructure:"timeout" yaml:"timeout"`
}

// InstallConfig controls local installs.
type InstallConfig struct {
	DefaultRoot string `mapstructure:"default_root" yaml:"default_root"`
	LockDir     string `mapstructure:"lock_dir" yaml:"lock_dir"`
}

// ServerConfig selects the MCP transport.
type ServerConfig struct {
	Transport string `mapstructure:"transport" yaml:"transport"`
	Addr      string `mapstructure:"addr" yaml:"addr"`
}

// Init configures the global Viper instance: file search paths, environment
// binding, .env loading, and defaults. Call it once before Load.
func Init() {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	viper.AddConfigPath(".")
	viper.AddConfigPath(paths.ConfigDir())

	// A missing .env is normal; a malformed one is ignored like a missing one
	// so that the process still starts with its other settings.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Debug("ignoring unreadable .env", "error", err)
	}

	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	_ = viper.BindEnv("repository.token", EnvPrefix+"_REPOSITORY_TOKEN", "GITHUB_TOKEN")

	SetDefaults(viper.GetViper())
}

// SetDefaults registers every recognized key with its default on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("repository.base_url", "https://raw.githubusercontent.com")
	v.SetDefault("repository.owner", "github")
	v.SetDefault("repository.name", "awesome-copilot")
	v.SetDefault("repository.ref", "main")
	v.SetDefault("repository.metadata_path", "metadata.json")
	v.SetDefault("repository.token", "")
	v.SetDefault("cache.ttl", 10*time.Minute)
	v.SetDefault("cache.content_entries", 256)
	v.SetDefault("fetch.timeout", 30*time.Second)
	v.SetDefault("install.default_root", ".github")
	v.SetDefault("install.lock_dir", paths.LockDir())
	v.SetDefault("server.transport", TransportStdio)
	v.SetDefault("server.addr", ":8080")
}

// Load reads the configuration file, applies environment overrides, and
// validates the result. If path is empty the default locations are searched
// and a missing file is not an error; an explicit path must exist.
func Load(path string) (*Config, error) {
	if path != "" {
		viper.SetConfigFile(path)
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		switch {
		case errors.As(err, &notFound) && path == "":
			// Defaults and environment only.
		case errors.As(err, &notFound), errors.Is(err, fs.ErrNotExist):
			return nil, errors.Mark(errors.Wrapf(err, "config file not found at %s", path), errors.ErrInvalidConfig)
		default:
			return nil, errors.Mark(errors.Wrap(err, "reading config file"), errors.ErrInvalidConfig)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, errors.Mark(errors.Wrap(err, "unmarshaling config"), errors.ErrInvalidConfig)
	}

	if errs := Validate(&cfg); len(errs) > 0 {
		return nil, errors.Mark(joinErrors(errs), errors.ErrInvalidConfig)
	}
	return &cfg, nil
}

// UsedFile returns the config file Load read, or "" when none was found.
func UsedFile() string {
	return viper.ConfigFileUsed()
}

func joinErrors(errs []error) error {
	msgs := make([]string, len(errs))
	for i, err := range errs {
		msgs[i] = err.Error()
	}
	return errors.Newf("invalid configuration: %s", strings.Join(msgs, "; "))
}

// Settings returns the effective configuration as nested maps with the token
// and any URL credentials masked, for display.
func (c *Config) Settings() map[string]any {
	return map[string]any{
		"repository": map[string]any{
			"base_url":      logging.MaskURL(c.Repository.BaseURL),
			"owner":         c.Repository.Owner,
			"name":          c.Repository.Name,
			"ref":           c.Repository.Ref,
			"metadata_path": c.Repository.MetadataPath,
			"token":         maskToken(c.Repository.Token),
		},
		"cache": map[string]any{
			"ttl":             c.Cache.TTL.String(),
			"content_entries": c.Cache.ContentEntries,
		},
		"fetch": map[string]any{
			"timeout": c.Fetch.Timeout.String(),
		},
		"install": map[string]any{
			"default_root": c.Install.DefaultRoot,
			"lock_dir":     c.Install.LockDir,
		},
		"server": map[string]any{
			"transport": c.Server.Transport,
			"addr":      c.Server.Addr,
		},
	}
}

func maskToken(token string) string {
	if token == "" {
		return ""
	}
	return logging.MaskValue(token)
}
