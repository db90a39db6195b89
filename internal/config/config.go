// Package config loads the environment and the optional YAML configuration file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/naka-gawa/contrib-report/internal/tagging"
	"gopkg.in/yaml.v3"
)

// DefaultRepo is the repository reported on when no configuration file overrides it.
const DefaultRepo = "apache/incubator-tvm"

const (
	defaultOutput           = "the_report.md"
	defaultInitialDelay     = 60 * time.Second
	defaultContributorDelay = 5 * time.Second
	defaultMaxRateLimitWait = time.Hour
)

var (
	// ErrMissingToken is returned when GITHUB_TOKEN is unset or empty.
	ErrMissingToken = errors.New("please set your GITHUB_TOKEN environment variable")
	// ErrInvalidConfig is returned when the configuration file cannot be used.
	ErrInvalidConfig = errors.New("invalid configuration file")
)

// Env holds the settings read from the environment.
type Env struct {
	GitHubToken string `env:"GITHUB_TOKEN" env-required:"true"`
}

// LoadEnv reads the environment. A missing or empty token is an error.
func LoadEnv() (*Env, error) {
	var env Env
	if err := cleanenv.ReadEnv(&env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMissingToken, err)
	}
	if env.GitHubToken == "" {
		return nil, ErrMissingToken
	}
	return &env, nil
}

// Config holds the optional settings of the configuration file.
// Zero values mean "use the default"; use the accessor methods to read them.
type Config struct {
	Repo             string         `yaml:"repo"`
	CachePath        string         `yaml:"cache_path"`
	TemplatePath     string         `yaml:"template_path"`
	Output           string         `yaml:"output"`
	InitialDelay     *time.Duration `yaml:"initial_delay"`
	ContributorDelay *time.Duration `yaml:"contributor_delay"`
	MaxRateLimitWait time.Duration  `yaml:"max_rate_limit_wait"`
	BucketThreshold  int            `yaml:"bucket_threshold"`
	CatchAll         string         `yaml:"catch_all"`
}

// Load reads the configuration file at path. An empty path yields the defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		return &Config{}, nil
	}
	// #nosec G304 -- config file path is provided via command line flag
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", ErrInvalidConfig, path, err)
	}
	return parse(data)
}

func parse(data []byte) (*Config, error) {
	cfg := &Config{}
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if cfg.BucketThreshold < 0 {
		return nil, fmt.Errorf("%w: bucket_threshold must not be negative", ErrInvalidConfig)
	}
	if cfg.InitialDelay != nil && *cfg.InitialDelay < 0 {
		return nil, fmt.Errorf("%w: initial_delay must not be negative", ErrInvalidConfig)
	}
	if cfg.ContributorDelay != nil && *cfg.ContributorDelay < 0 {
		return nil, fmt.Errorf("%w: contributor_delay must not be negative", ErrInvalidConfig)
	}
	return cfg, nil
}

func (c Config) RepoName() string {
	if c.Repo == "" {
		return DefaultRepo
	}
	return c.Repo
}

func (c Config) OutputPath() string {
	if c.Output == "" {
		return defaultOutput
	}
	return c.Output
}

// Delays returns the pause after the bulk search and the pause after each contributor.
// Both may be set to zero explicitly.
func (c Config) Delays() (initial, perContributor time.Duration) {
	initial, perContributor = defaultInitialDelay, defaultContributorDelay
	if c.InitialDelay != nil {
		initial = *c.InitialDelay
	}
	if c.ContributorDelay != nil {
		perContributor = *c.ContributorDelay
	}
	return initial, perContributor
}

// RateLimitWait is the longest single wait the transport spends on a secondary rate limit.
func (c Config) RateLimitWait() time.Duration {
	if c.MaxRateLimitWait <= 0 {
		return defaultMaxRateLimitWait
	}
	return c.MaxRateLimitWait
}

func (c Config) Bucketer() tagging.Bucketer {
	bucketer := tagging.NewBucketer()
	if c.BucketThreshold > 0 {
		bucketer.Threshold = c.BucketThreshold
	}
	if c.CatchAll != "" {
		bucketer.CatchAll = c.CatchAll
	}
	return bucketer
}
