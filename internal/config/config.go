package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	DefaultBaseURL        = "http://localhost:5000"
	DefaultRequestTimeout = 2 * time.Minute
	DefaultReloadDelay    = 2 * time.Second
	DefaultToastDuration  = 5 * time.Second

	envPrefix = "STUDYSCOUT"
)

// Config is the resolved runtime configuration.
type Config struct {
	BaseURL        string        `mapstructure:"base-url"`
	RequestTimeout time.Duration `mapstructure:"request-timeout"`
	ReloadDelay    time.Duration `mapstructure:"reload-delay"`
	ToastDuration  time.Duration `mapstructure:"toast-duration"`
	LogFile        string        `mapstructure:"log-file"`
	NoAltScreen    bool          `mapstructure:"no-alt-screen"`
}

// Options locates the configuration sources. Empty fields use the defaults:
// $HOME/.config/studyscout/config.yml and .env in the working directory.
type Options struct {
	ConfigPath string
	EnvFile    string
}

// Load resolves configuration from defaults, an optional YAML file and
// STUDYSCOUT_* environment variables, in increasing precedence. Missing files
// are not an error.
func Load(opts Options) (Config, error) {
	var cfg Config

	envFile := opts.EnvFile
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
		return cfg, fmt.Errorf("loading %s: %w", envFile, err)
	}

	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))

	v.SetDefault("base-url", DefaultBaseURL)
	v.SetDefault("request-timeout", DefaultRequestTimeout)
	v.SetDefault("reload-delay", DefaultReloadDelay)
	v.SetDefault("toast-duration", DefaultToastDuration)
	v.SetDefault("log-file", defaultLogFile())
	v.SetDefault("no-alt-screen", false)

	configPath := opts.ConfigPath
	if configPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return cfg, fmt.Errorf("finding home directory: %w", err)
		}
		configPath = filepath.Join(home, ".config", "studyscout", "config.yml")
	}
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFound) && !os.IsNotExist(err) {
			return cfg, err
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, err
	}
	cfg.BaseURL = strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	return cfg, nil
}

// Validate reports the first unusable setting.
func (c Config) Validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("base-url %q must be an absolute http(s) URL", c.BaseURL)
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("request-timeout must be positive, got %s", c.RequestTimeout)
	}
	if c.ReloadDelay <= 0 {
		return fmt.Errorf("reload-delay must be positive, got %s", c.ReloadDelay)
	}
	if c.ToastDuration <= 0 {
		return fmt.Errorf("toast-duration must be positive, got %s", c.ToastDuration)
	}
	if strings.TrimSpace(c.LogFile) == "" {
		return errors.New("log-file must not be empty")
	}
	return nil
}

func defaultLogFile() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return "studyscout.log"
	}
	return filepath.Join(dir, "studyscout", "studyscout.log")
}
