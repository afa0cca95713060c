package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/learnflix/learnflix/internal/learner"
	"github.com/learnflix/learnflix/internal/nav"
)

// Environment variable names. Values from a .env file are read with the
// same names; variables already set in the environment win.
const (
	EnvConfig      = "LEARNFLIX_CONFIG"
	EnvLogFile     = "LEARNFLIX_LOG_FILE"
	EnvLogLevel    = "LEARNFLIX_LOG_LEVEL"
	EnvLogFormat   = "LEARNFLIX_LOG_FORMAT"
	EnvCatalog     = "LEARNFLIX_CATALOG"
	EnvStartScreen = "LEARNFLIX_START_SCREEN"
	EnvLevel       = "LEARNFLIX_LEVEL"
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config is the resolved application configuration.
type Config struct {
	LogFile     string `yaml:"log_file"`
	LogLevel    string `yaml:"log_level" validate:"oneof=debug info warn error"`
	LogFormat   string `yaml:"log_format" validate:"oneof=json console"`
	CatalogPath string `yaml:"catalog_path"`
	StartScreen string `yaml:"start_screen" validate:"home_screen"`
	Level       string `yaml:"level" validate:"cefr"`
}

// Overrides carries command-line values. Empty fields are ignored.
type Overrides struct {
	LogFile     string
	LogLevel    string
	CatalogPath string
}

// Options select the sources Load reads.
type Options struct {
	// Path is an explicit config file; it must exist. When empty the
	// default path is used if present.
	Path string
	// EnvFile is the dotenv file to read. Defaults to ".env".
	EnvFile   string
	Overrides Overrides
}

// Defaults returns the built-in configuration.
func Defaults() *Config {
	return &Config{
		LogLevel:    "info",
		LogFormat:   "json",
		StartScreen: string(nav.Dashboard),
		Level:       string(learner.DefaultLevel),
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/learnflix/config.yaml, falling back
// to ~/.config.
func DefaultPath() (string, error) {
	if p := os.Getenv(EnvConfig); p != "" {
		return p, nil
	}
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "learnflix", "config.yaml"), nil
}

// Load resolves the configuration: defaults, then the YAML file, then the
// dotenv file, then the process environment, then overrides.
func Load(opts Options) (*Config, error) {
	cfg := Defaults()

	if err := cfg.loadFile(opts.Path); err != nil {
		return nil, err
	}

	envFile := opts.EnvFile
	if envFile == "" {
		envFile = ".env"
	}
	dotenv, err := godotenv.Read(envFile)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("read %s: %w", envFile, err)
	}
	cfg.applyEnv(func(key string) (string, bool) {
		v, ok := dotenv[key]
		return v, ok
	})
	cfg.applyEnv(os.LookupEnv)
	cfg.applyOverrides(opts.Overrides)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return err
		}
		path = p
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to read config file: %w", err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) {
	set := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}
	set(EnvLogFile, &c.LogFile)
	set(EnvLogLevel, &c.LogLevel)
	set(EnvLogFormat, &c.LogFormat)
	set(EnvCatalog, &c.CatalogPath)
	set(EnvStartScreen, &c.StartScreen)
	set(EnvLevel, &c.Level)
}

func (c *Config) applyOverrides(o Overrides) {
	if o.LogFile != "" {
		c.LogFile = o.LogFile
	}
	if o.LogLevel != "" {
		c.LogLevel = o.LogLevel
	}
	if o.CatalogPath != "" {
		c.CatalogPath = o.CatalogPath
	}
}

var validate *validator.Validate

func init() {
	validate = validator.New()
	_ = validate.RegisterValidation("home_screen", func(fl validator.FieldLevel) bool {
		s, err := nav.ParseScreen(fl.Field().String())
		return err == nil && s.RequiresLogin()
	})
	_ = validate.RegisterValidation("cefr", func(fl validator.FieldLevel) bool {
		_, err := learner.ParseLevel(fl.Field().String())
		return err == nil
	})
}

// Validate checks every field.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s=%q must satisfy %s", fe.Field(), fe.Value(), fe.Tag()))
	}
	return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(msgs, "; "))
}

// Home returns the screen opened after login.
func (c *Config) Home() nav.Screen {
	s, err := nav.ParseScreen(c.StartScreen)
	if err != nil || !s.RequiresLogin() {
		return nav.Dashboard
	}
	return s
}

// InitialLevel returns the learner's starting CEFR level.
func (c *Config) InitialLevel() learner.Level {
	l, err := learner.ParseLevel(c.Level)
	if err != nil {
		return learner.DefaultLevel
	}
	return l
}
