package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

const ENV_FILE = ".env"
const CONFIG_FILE = "config.yaml"

type AppConfig struct {
	Logging LoggingConfig `yaml:"logging"`
	Server  ServerConfig  `yaml:"server"`
	Fetch   FetchConfig   `yaml:"fetch"`
	Summary SummaryConfig `yaml:"summary"`

	// Env holds settings sourced from the process environment rather than
	// the config file (DATABASE_URL and friends).
	Env EnvConfig `yaml:"-"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

type ServerConfig struct {
	Port int `yaml:"port"`
}

// FetchConfig controls how article documents are fetched.
type FetchConfig struct {
	// TimeoutSeconds bounds a single outbound document fetch.
	TimeoutSeconds int `yaml:"timeout_seconds"`

	UserAgent string `yaml:"user_agent"`

	// UseHeadless routes fetches through a headless browser instead of a
	// plain HTTP GET. Needed for client-rendered sites.
	UseHeadless bool `yaml:"use_headless"`
}

// SummaryConfig controls extractive summarization and the punkt
// tokenizer resource lifecycle.
type SummaryConfig struct {
	// MaxSentences is the number of sentences kept in a summary.
	MaxSentences int `yaml:"max_sentences"`

	// PunktDataURL is where the tokenizer training data is downloaded
	// from when the local cache is empty.
	PunktDataURL string `yaml:"punkt_data_url"`

	// PunktCacheDir overrides the on-disk cache location. Empty means
	// the user cache dir.
	PunktCacheDir string `yaml:"punkt_cache_dir"`
}

// EnvConfig mirrors the runtime settings object: everything here comes
// from environment variables, with the .env file as a convenience.
type EnvConfig struct {
	DatabaseURL string `envconfig:"DATABASE_URL" default:"file:text_summary.db?cache=shared"`
	Environment string `envconfig:"ENVIRONMENT" default:"dev"`
	Testing     bool   `envconfig:"TESTING" default:"false"`
}

const defaultPunktDataURL = "https://raw.githubusercontent.com/neurosnap/sentences/master/data/english.json"
const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/118.0.0.0 Safari/537.36"

// Default returns the configuration used when no config file is present.
func Default() AppConfig {
	c := AppConfig{}
	c.Logging.Level = "info"
	c.Server.Port = 8080
	c.Fetch.TimeoutSeconds = 30
	c.Fetch.UserAgent = defaultUserAgent
	c.Summary.MaxSentences = 5
	c.Summary.PunktDataURL = defaultPunktDataURL
	c.Env.Environment = "dev"
	c.Env.DatabaseURL = "file:text_summary.db?cache=shared"
	return c
}

var config *AppConfig

func InitApp() {
	// load environment variables
	godotenv.Load(filepath.Join(GetBasePath(), ENV_FILE))

	c := Default()

	// config.yaml is optional; defaults cover a bare checkout
	data, err := os.ReadFile(filepath.Join(GetBasePath(), CONFIG_FILE))
	if err == nil {
		if err := yaml.Unmarshal(data, &c); err != nil {
			panic(err)
		}
	}

	if err := envconfig.Process("", &c.Env); err != nil {
		panic(err)
	}

	applyDefaults(&c)
	config = &c
}

func applyDefaults(c *AppConfig) {
	d := Default()
	if c.Logging.Level == "" {
		c.Logging.Level = d.Logging.Level
	}
	if c.Server.Port == 0 {
		c.Server.Port = d.Server.Port
	}
	if c.Fetch.TimeoutSeconds == 0 {
		c.Fetch.TimeoutSeconds = d.Fetch.TimeoutSeconds
	}
	if c.Fetch.UserAgent == "" {
		c.Fetch.UserAgent = d.Fetch.UserAgent
	}
	if c.Summary.MaxSentences == 0 {
		c.Summary.MaxSentences = d.Summary.MaxSentences
	}
	if c.Summary.PunktDataURL == "" {
		c.Summary.PunktDataURL = d.Summary.PunktDataURL
	}
}

func GetConfig() AppConfig {
	if config == nil {
		InitApp()
	}

	return *config
}

// OverrideConfigForTest replaces the loaded configuration. The test
// harness uses it to substitute test settings for the real ones.
func OverrideConfigForTest(c AppConfig) {
	applyDefaults(&c)
	config = &c
}

func GetBasePath() string {
	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}

	dir := cwd
	for {
		cfgPath := filepath.Join(dir, CONFIG_FILE)
		if info, err := os.Stat(cfgPath); err == nil && !info.IsDir() {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return ""
}
