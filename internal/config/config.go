// Package config loads runtime configuration for the web server from the
// environment, an optional .env file and explicit overrides.
package config

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

const (
	defaultEnvFile         = ".env"
	defaultPort            = "8080"
	defaultReadTimeout     = 15 * time.Second
	defaultWriteTimeout    = 15 * time.Second
	defaultIdleTimeout     = 60 * time.Second
	defaultShutdownTimeout = 10 * time.Second
	defaultRequestTimeout  = 30 * time.Second
	defaultSiteURL         = "http://localhost:8080"
	defaultSiteName        = "ethereum.org"
	defaultLocale          = "en"
	defaultLocales         = "en,es,ja"
	defaultCacheMaxCost    = 32 << 20
	defaultCacheCounters   = 10_000
	defaultCacheTTL        = 10 * time.Minute
	defaultMetricsPath     = "/metrics"
	defaultStatsTimeout    = 3 * time.Second
	defaultStatsTTL        = time.Minute
	defaultStatsRefresh    = "@every 1m"
	defaultLogLevel        = "info"
)

// Config captures all runtime configuration organised by concern.
type Config struct {
	Server    ServerConfig
	Site      SiteConfig
	Paths     PathsConfig
	Cache     CacheConfig
	Catalog   CatalogConfig
	Metrics   MetricsConfig
	Analytics AnalyticsConfig
	Stats     StatsConfig
	Log       LogConfig
}

// ServerConfig configures HTTP server parameters.
type ServerConfig struct {
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
	RequestTimeout  time.Duration
	// DevMode reparses templates on every request.
	DevMode bool
}

// SiteConfig describes the public site.
type SiteConfig struct {
	URL           string
	Name          string
	DefaultLocale string
	Locales       []string
}

// PathsConfig locates on-disk resources.
type PathsConfig struct {
	Templates string
	Public    string
	Locales   string
	Content   string
}

// CacheConfig sizes the rendered content cache.
type CacheConfig struct {
	Enabled     bool
	MaxCost     int64
	NumCounters int64
	TTL         time.Duration
}

// CatalogConfig controls catalog presentation.
type CatalogConfig struct {
	// ShuffleSeed makes shuffled catalogs deterministic when non-zero.
	ShuffleSeed uint64
}

// MetricsConfig toggles the Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool
	Path    string
}

// AnalyticsConfig holds client instrumentation surfaced to templates.
type AnalyticsConfig struct {
	GA4MeasurementID string
	GTMContainerID   string
	Debug            bool
}

// StatsConfig points at the network statistics endpoint. An empty URL
// renders the home page stats as placeholders.
type StatsConfig struct {
	URL     string
	Timeout time.Duration
	TTL     time.Duration
	// Refresh is a cron spec for background refreshes; empty disables them.
	Refresh string
}

// LogConfig controls the structured logger.
type LogConfig struct {
	Level string
}

// ValidationError is returned when required configuration fields are missing or invalid.
type ValidationError struct {
	fields []string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("config validation failed: missing or invalid fields [%s]", strings.Join(e.fields, ", "))
}

// Fields returns a copy of the missing/invalid field list.
func (e *ValidationError) Fields() []string {
	out := make([]string, len(e.fields))
	copy(out, e.fields)
	return out
}

// Option customises Load behaviour.
type Option func(*loaderOptions)

type loaderOptions struct {
	envFile      string
	envMap       map[string]string
	useSystemEnv bool
}

// WithEnvFile overrides the .env file path used for local overrides.
func WithEnvFile(path string) Option {
	return func(o *loaderOptions) {
		o.envFile = path
	}
}

// WithEnvMap injects an explicit key/value map for environment lookups. Values in the map
// take precedence over system environment variables.
func WithEnvMap(values map[string]string) Option {
	return func(o *loaderOptions) {
		o.envMap = values
	}
}

// WithoutSystemEnv disables reading from the process environment.
func WithoutSystemEnv() Option {
	return func(o *loaderOptions) {
		o.useSystemEnv = false
	}
}

// Load resolves configuration with precedence defaults < .env < OS env < explicit map.
func Load(ctx context.Context, opts ...Option) (Config, error) {
	if err := ctx.Err(); err != nil {
		return Config{}, err
	}
	options := loaderOptions{
		envFile:      defaultEnvFile,
		useSystemEnv: true,
	}
	for _, opt := range opts {
		opt(&options)
	}

	dotEnvValues, err := loadDotEnv(options.envFile)
	if err != nil {
		return Config{}, err
	}

	lookup := func(key string) (string, bool) {
		if options.envMap != nil {
			if value, ok := options.envMap[key]; ok {
				return value, true
			}
		}
		if options.useSystemEnv {
			if value, ok := os.LookupEnv(key); ok {
				return value, true
			}
		}
		if dotEnvValues != nil {
			if value, ok := dotEnvValues[key]; ok {
				return value, true
			}
		}
		return "", false
	}

	// Cloud Run injects PORT; WEB_PORT wins when both are set.
	port := stringWithDefault(lookup, "PORT", defaultPort)
	port = stringWithDefault(lookup, "WEB_PORT", port)

	cfg := Config{
		Server: ServerConfig{
			Port:            port,
			ReadTimeout:     durationWithDefault(lookup, "WEB_READ_TIMEOUT", defaultReadTimeout),
			WriteTimeout:    durationWithDefault(lookup, "WEB_WRITE_TIMEOUT", defaultWriteTimeout),
			IdleTimeout:     durationWithDefault(lookup, "WEB_IDLE_TIMEOUT", defaultIdleTimeout),
			ShutdownTimeout: durationWithDefault(lookup, "WEB_SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
			RequestTimeout:  durationWithDefault(lookup, "WEB_REQUEST_TIMEOUT", defaultRequestTimeout),
			DevMode:         boolWithDefault(lookup, "WEB_DEV", false),
		},
		Site: SiteConfig{
			URL:           strings.TrimRight(stringWithDefault(lookup, "WEB_SITE_URL", defaultSiteURL), "/"),
			Name:          stringWithDefault(lookup, "WEB_SITE_NAME", defaultSiteName),
			DefaultLocale: strings.ToLower(stringWithDefault(lookup, "WEB_DEFAULT_LOCALE", defaultLocale)),
			Locales:       lowerAll(csvWithDefault(lookup, "WEB_LOCALES", defaultLocales)),
		},
		Paths: PathsConfig{
			Templates: stringWithDefault(lookup, "WEB_TEMPLATES_DIR", "templates"),
			Public:    stringWithDefault(lookup, "WEB_PUBLIC_DIR", "public"),
			Locales:   stringWithDefault(lookup, "WEB_LOCALES_DIR", "locales"),
			Content:   stringWithDefault(lookup, "WEB_CONTENT_DIR", "content"),
		},
		Cache: CacheConfig{
			Enabled:     boolWithDefault(lookup, "WEB_CACHE_ENABLED", true),
			MaxCost:     int64WithDefault(lookup, "WEB_CACHE_MAX_COST", defaultCacheMaxCost),
			NumCounters: int64WithDefault(lookup, "WEB_CACHE_COUNTERS", defaultCacheCounters),
			TTL:         durationWithDefault(lookup, "WEB_CACHE_TTL", defaultCacheTTL),
		},
		Catalog: CatalogConfig{
			ShuffleSeed: uint64WithDefault(lookup, "WEB_SHUFFLE_SEED", 0),
		},
		Metrics: MetricsConfig{
			Enabled: boolWithDefault(lookup, "WEB_METRICS_ENABLED", true),
			Path:    stringWithDefault(lookup, "WEB_METRICS_PATH", defaultMetricsPath),
		},
		Analytics: AnalyticsConfig{
			GA4MeasurementID: stringWithDefault(lookup, "WEB_GA_MEASUREMENT_ID", ""),
			GTMContainerID:   stringWithDefault(lookup, "WEB_GTM_CONTAINER_ID", ""),
			Debug:            boolWithDefault(lookup, "WEB_ANALYTICS_DEBUG", false),
		},
		Stats: StatsConfig{
			URL:     stringWithDefault(lookup, "WEB_STATS_URL", ""),
			Timeout: durationWithDefault(lookup, "WEB_STATS_TIMEOUT", defaultStatsTimeout),
			TTL:     durationWithDefault(lookup, "WEB_STATS_TTL", defaultStatsTTL),
			Refresh: stringWithDefault(lookup, "WEB_STATS_REFRESH", defaultStatsRefresh),
		},
		Log: LogConfig{
			Level: stringWithDefault(lookup, "LOG_LEVEL", defaultLogLevel),
		},
	}

	if err := validateConfig(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func validateConfig(cfg Config) error {
	var missing []string

	if _, err := strconv.Atoi(cfg.Server.Port); err != nil {
		missing = append(missing, "Server.Port")
	}
	if cfg.Server.ReadTimeout <= 0 {
		missing = append(missing, "Server.ReadTimeout")
	}
	if cfg.Server.WriteTimeout <= 0 {
		missing = append(missing, "Server.WriteTimeout")
	}
	if u, err := url.Parse(cfg.Site.URL); err != nil || u.Scheme == "" || u.Host == "" {
		missing = append(missing, "Site.URL")
	}
	if len(cfg.Site.Locales) == 0 {
		missing = append(missing, "Site.Locales")
	}
	if !contains(cfg.Site.Locales, cfg.Site.DefaultLocale) {
		missing = append(missing, "Site.DefaultLocale")
	}
	if cfg.Cache.Enabled {
		if cfg.Cache.MaxCost <= 0 {
			missing = append(missing, "Cache.MaxCost")
		}
		if cfg.Cache.NumCounters <= 0 {
			missing = append(missing, "Cache.NumCounters")
		}
	}
	if cfg.Metrics.Enabled && !strings.HasPrefix(cfg.Metrics.Path, "/") {
		missing = append(missing, "Metrics.Path")
	}

	if len(missing) > 0 {
		return &ValidationError{fields: missing}
	}
	return nil
}

// Addr returns the listen address for the server.
func (c ServerConfig) Addr() string {
	return ":" + c.Port
}

func loadDotEnv(path string) (map[string]string, error) {
	if path == "" {
		return nil, nil
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		absPath = path
	}

	file, err := os.Open(absPath)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("config: unable to read %s: %w", absPath, err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	values := make(map[string]string)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		line = strings.TrimSpace(strings.TrimPrefix(line, "export "))
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		values[key] = strings.Trim(strings.TrimSpace(value), "\"'")
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("config: failed parsing %s: %w", absPath, err)
	}
	return values, nil
}

func stringWithDefault(lookup func(string) (string, bool), key, fallback string) string {
	if value, ok := lookup(key); ok && strings.TrimSpace(value) != "" {
		return strings.TrimSpace(value)
	}
	return fallback
}

func durationWithDefault(lookup func(string) (string, bool), key string, fallback time.Duration) time.Duration {
	if value, ok := lookup(key); ok && value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}

func int64WithDefault(lookup func(string) (string, bool), key string, fallback int64) int64 {
	if value, ok := lookup(key); ok && value != "" {
		if parsed, err := strconv.ParseInt(value, 10, 64); err == nil {
			return parsed
		}
	}
	return fallback
}

func uint64WithDefault(lookup func(string) (string, bool), key string, fallback uint64) uint64 {
	if value, ok := lookup(key); ok && value != "" {
		if parsed, err := strconv.ParseUint(value, 10, 64); err == nil {
			return parsed
		}
	}
	return fallback
}

func boolWithDefault(lookup func(string) (string, bool), key string, fallback bool) bool {
	if value, ok := lookup(key); ok && value != "" {
		switch strings.ToLower(value) {
		case "true", "1", "yes", "on":
			return true
		case "false", "0", "no", "off":
			return false
		}
	}
	return fallback
}

func csvWithDefault(lookup func(string) (string, bool), key, fallback string) []string {
	raw, ok := lookup(key)
	if !ok || strings.TrimSpace(raw) == "" {
		raw = fallback
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func lowerAll(values []string) []string {
	for i, v := range values {
		values[i] = strings.ToLower(v)
	}
	return values
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
