// Package config loads CLI settings from defaults, an optional YAML config
// file, a .env file and COURIER_* environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	clierrors "courier/internal/errors"
	"courier/internal/logging"
	"courier/pkg/request"
)

// EnvPrefix is the prefix for environment overrides, e.g. COURIER_TIMEOUT.
const EnvPrefix = "COURIER"

// Setting keys.
const (
	KeyLogLevel           = "log_level"
	KeyLogFormat          = "log_format"
	KeyTimeout            = "timeout"
	KeyCachePolicy        = "cache_policy"
	KeyUserAgent          = "user_agent"
	KeyInsecureSkipVerify = "insecure_skip_verify"
	KeyRateLimit          = "rate_limit"
	KeyRateBurst          = "rate_burst"
)

// Settings is the validated CLI configuration.
type Settings struct {
	LogLevel           string
	LogFormat          string
	Timeout            time.Duration
	CachePolicy        request.CachePolicy
	UserAgent          string
	InsecureSkipVerify bool
	RateLimit          float64
	RateBurst          int
}

// SetDefaults registers the default value of every key.
func SetDefaults(v *viper.Viper) {
	defaults := request.StandardDefaults()
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFormat, string(logging.FormatText))
	v.SetDefault(KeyTimeout, defaults.Timeout.String())
	v.SetDefault(KeyCachePolicy, defaults.CachePolicy.String())
	v.SetDefault(KeyUserAgent, "courier")
	v.SetDefault(KeyInsecureSkipVerify, false)
	v.SetDefault(KeyRateLimit, 0)
	v.SetDefault(KeyRateBurst, 1)
}

// DefaultConfigDirFrom returns the default config directory under home.
func DefaultConfigDirFrom(home string) string {
	return filepath.Join(home, ".config", "courier")
}

// LoadDotEnv loads variables from the given .env files into the process
// environment. Missing files are skipped and existing variables win.
func LoadDotEnv(paths ...string) error {
	for _, path := range paths {
		if err := godotenv.Load(path); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return clierrors.NewConfigurationError("dotenv", path, "failed to load env file", err)
		}
	}
	return nil
}

// Configure prepares v to read cfgFile, or config.yaml from configDir when
// cfgFile is empty, and to honour COURIER_* environment variables. A missing
// default config file is not an error; a missing explicit one is.
func Configure(v *viper.Viper, cfgFile, configDir string) error {
	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(configDir)
		v.SetConfigType("yaml")
		v.SetConfigName("config")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return nil
		}
		return clierrors.NewConfigurationError("config", cfgFile, "failed to read config file", err)
	}
	return nil
}

// Load reads and validates the settings held by v.
func Load(v *viper.Viper) (*Settings, error) {
	var errs []error

	level := v.GetString(KeyLogLevel)
	if _, err := logging.ParseLevel(level); err != nil {
		errs = append(errs, clierrors.NewConfigurationError(KeyLogLevel, level, "must be debug, info, warn or error", err))
	}

	format := v.GetString(KeyLogFormat)
	if _, err := logging.ParseFormat(format); err != nil {
		errs = append(errs, clierrors.NewConfigurationError(KeyLogFormat, format, "must be text or json", err))
	}

	rawTimeout := v.GetString(KeyTimeout)
	timeout, err := time.ParseDuration(rawTimeout)
	switch {
	case err != nil:
		errs = append(errs, clierrors.NewConfigurationError(KeyTimeout, rawTimeout, "invalid duration", err))
	case timeout < 0:
		errs = append(errs, clierrors.NewConfigurationError(KeyTimeout, rawTimeout, "must not be negative", nil))
	}

	rawPolicy := v.GetString(KeyCachePolicy)
	policy, err := request.ParseCachePolicy(rawPolicy)
	if err != nil {
		errs = append(errs, clierrors.NewConfigurationError(KeyCachePolicy, rawPolicy, "unknown cache policy", err))
	}

	rawRate := v.GetString(KeyRateLimit)
	rateLimit, err := strconv.ParseFloat(rawRate, 64)
	switch {
	case err != nil:
		errs = append(errs, clierrors.NewConfigurationError(KeyRateLimit, rawRate, "must be a number", err))
	case rateLimit < 0:
		errs = append(errs, clierrors.NewConfigurationError(KeyRateLimit, rawRate, "must not be negative", nil))
	}

	rawBurst := v.GetString(KeyRateBurst)
	burst, err := strconv.Atoi(rawBurst)
	switch {
	case err != nil:
		errs = append(errs, clierrors.NewConfigurationError(KeyRateBurst, rawBurst, "must be an integer", err))
	case burst < 1:
		errs = append(errs, clierrors.NewConfigurationError(KeyRateBurst, rawBurst, "must be at least 1", nil))
	}

	if err := clierrors.Join(errs...); err != nil {
		return nil, err
	}

	return &Settings{
		LogLevel:           level,
		LogFormat:          format,
		Timeout:            timeout,
		CachePolicy:        policy,
		UserAgent:          v.GetString(KeyUserAgent),
		InsecureSkipVerify: v.GetBool(KeyInsecureSkipVerify),
		RateLimit:          rateLimit,
		RateBurst:          burst,
	}, nil
}

// RequestDefaults returns the defaults applied to every request.
func (s *Settings) RequestDefaults() request.Defaults {
	return request.Defaults{
		CachePolicy: s.CachePolicy,
		Timeout:     s.Timeout,
	}
}

// LoggingConfig returns the logger configuration. Settings from Load are
// already validated, so parse errors cannot occur here.
func (s *Settings) LoggingConfig() logging.Config {
	cfg := logging.DefaultConfig()
	cfg.Level, _ = logging.ParseLevel(s.LogLevel)
	cfg.Format, _ = logging.ParseFormat(s.LogFormat)
	return cfg
}

func (s *Settings) String() string {
	return fmt.Sprintf("timeout=%s cache_policy=%s rate_limit=%g", s.Timeout, s.CachePolicy, s.RateLimit)
}
