package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to environment overrides, e.g. MARQUEE_TMDB_API_KEY
const EnvPrefix = "MARQUEE"

var (
	validate   *validator.Validate
	translator ut.Translator
)

func init() {
	validate = validator.New()
	translator, _ = ut.New(en.New(), en.New()).GetTranslator("en")
	if err := en_translations.RegisterDefaultTranslations(validate, translator); err != nil {
		panic(err)
	}
	// Report fields by their config key rather than the Go name.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("mapstructure"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

// Load loads the configuration from file and the environment. When configPath
// is empty the standard locations are searched and a missing file is not an
// error, so the whole configuration may come from MARQUEE_* variables.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Set default values
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		// Look for config in standard locations
		v.SetConfigName("config")
		v.SetConfigType("yaml")

		// Check current directory first
		v.AddConfigPath(".")

		// Check home directory
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".marquee"))
		}

		// Check /etc
		v.AddConfigPath("/etc/marquee/")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// TMDB defaults
	v.SetDefault("tmdb.base_url", "https://api.themoviedb.org/3")
	v.SetDefault("tmdb.api_key", "")
	v.SetDefault("tmdb.timeout", 30*time.Second)
	v.SetDefault("tmdb.user_agent", "marquee")
	v.SetDefault("tmdb.rate_limit.rps", 20)
	v.SetDefault("tmdb.rate_limit.burst", 10)

	// Display defaults
	v.SetDefault("display.show_details", false)
	v.SetDefault("display.overview_width", 80)

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.color", true)
}

// FieldError describes one invalid configuration key
type FieldError struct {
	Key string
	Err string
}

// FieldErrors collects every invalid key found during validation
type FieldErrors []FieldError

func (fe FieldErrors) Error() string {
	msgs := make([]string, 0, len(fe))
	for _, f := range fe {
		msgs = append(msgs, fmt.Sprintf("%s: %s", f.Key, f.Err))
	}
	return strings.Join(msgs, "; ")
}

// validateConfig checks the struct tags of cfg
func validateConfig(cfg *Config) error {
	err := validate.Struct(cfg)
	if err == nil {
		return nil
	}

	var verrors validator.ValidationErrors
	if !errors.As(err, &verrors) {
		return err
	}

	fields := make(FieldErrors, 0, len(verrors))
	for _, verror := range verrors {
		fields = append(fields, FieldError{
			Key: configKey(verror.Namespace()),
			Err: customErrForTag(verror.Tag(), verror),
		})
	}
	return fields
}

// configKey turns "Config.tmdb.api_key" into "tmdb.api_key"
func configKey(namespace string) string {
	if _, key, ok := strings.Cut(namespace, "."); ok {
		return key
	}
	return namespace
}

func customErrForTag(tag string, verror validator.FieldError) string {
	switch tag {
	case "required":
		return "is required"
	case "ne":
		return "must be set to a valid value"
	case "oneof":
		return fmt.Sprintf("must be one of: %s", strings.ReplaceAll(verror.Param(), " ", ", "))
	default:
		return verror.Translate(translator)
	}
}
