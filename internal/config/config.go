package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

var ErrMissingEnv = errors.New("missing required environment variable")

type Config struct {
	Jira   JiraConfig
	Logger LoggerConfig
}

type JiraConfig struct {
	BaseURL    string
	ProjectKey string
	Email      string
	APIToken   string

	MaxResults  int
	ReadyStatus string
	// RateLimit is requests per second; 0 disables pacing.
	RateLimit   float64
	HTTPTimeout time.Duration
}

// LoadFromEnv reads the configuration once at startup. Call Validate before use.
func LoadFromEnv() (Config, error) {
	maxResults, err := getEnvInt("JIRA_MAX_RESULTS", 50)
	if err != nil {
		return Config{}, err
	}
	rateLimit, err := getEnvFloat("JIRA_RATE_LIMIT", 0)
	if err != nil {
		return Config{}, err
	}
	timeout, err := getEnvDuration("HTTP_TIMEOUT", 30*time.Second)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		Jira: JiraConfig{
			BaseURL:     strings.TrimRight(strings.TrimSpace(os.Getenv("JIRA_BASE_URL")), "/"),
			ProjectKey:  strings.TrimSpace(os.Getenv("JIRA_PROJECT_KEY")),
			Email:       strings.TrimSpace(os.Getenv("JIRA_EMAIL")),
			APIToken:    strings.TrimSpace(os.Getenv("JIRA_API_TOKEN")),
			MaxResults:  maxResults,
			ReadyStatus: getEnvOrDefault("JIRA_READY_STATUS", "Ready for Development"),
			RateLimit:   rateLimit,
			HTTPTimeout: timeout,
		},
		Logger: LoadLoggerConfigFromEnv(),
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if err := c.Jira.Validate(); err != nil {
		return fmt.Errorf("jira config: %w", err)
	}
	if err := c.Logger.Validate(); err != nil {
		return fmt.Errorf("logger config: %w", err)
	}
	return nil
}

func (c JiraConfig) Validate() error {
	required := []struct {
		env, value string
	}{
		{"JIRA_BASE_URL", c.BaseURL},
		{"JIRA_PROJECT_KEY", c.ProjectKey},
		{"JIRA_EMAIL", c.Email},
		{"JIRA_API_TOKEN", c.APIToken},
	}

	var missing []string
	for _, r := range required {
		if r.value == "" {
			missing = append(missing, r.env)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingEnv, strings.Join(missing, ", "))
	}

	if c.MaxResults <= 0 {
		return fmt.Errorf("JIRA_MAX_RESULTS must be positive, got %d", c.MaxResults)
	}
	if c.RateLimit < 0 {
		return fmt.Errorf("JIRA_RATE_LIMIT must not be negative, got %v", c.RateLimit)
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return n, nil
}

func getEnvFloat(key string, defaultValue float64) (float64, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return defaultValue, nil
	}
	n, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return n, nil
}

func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return d, nil
}
