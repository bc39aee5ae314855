package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	ListenPort      string        // ex: ":8080"
	ShutdownTimeout time.Duration // ex: 5s

	LogLevel  string // "debug" | "info" | "warn" | "error"
	PrettyLog bool   // true => zap dev (color), false => zap prod (JSON)

	TraefikAPIURL string        // base URL of the Traefik control plane API (ex: http://traefik:8080)
	HTTPTimeout   time.Duration // timeout for outbound Traefik/Docker calls (2-5s range)
	DockerHost    string        // docker engine endpoint (unix:///var/run/docker.sock or tcp://host:2375)
	ControlEntity string        // container carrying the external-app declarations (default: portico)

	OverridesFile string // path to the overrides file, JSON or YAML (optional)
	OutputDir     string // directory apps.json and index.html are published to
	TemplateFile  string // optional client HTML template (empty = embedded default)

	PageTitle    string // dashboard page title
	OpenInNewTab bool   // open app links in a new tab
	ShowFooter   bool   // render the footer on the dashboard page
	SortBy       string // client-side sort hint ("default" | "name" | "category")

	RefreshInterval time.Duration // interval between generation passes (default: 5m)

	// Redis (optional snapshot cache; empty addr disables it)
	RedisAddr             string        // ex: "localhost:6379"
	RedisUser             string        // optional
	RedisPassword         string        // optional
	RedisPasswordRequired bool          // true => require password, false => allow empty password
	RedisDB               int           // Redis DB number
	RedisDT               time.Duration // Redis dial timeout (ex: 5s)
	RedisRT               time.Duration // Redis read timeout (ex: 3s)
	RedisWT               time.Duration // Redis write timeout (ex: 3s)
	RedisMaxWait          time.Duration // max wait between retries (ex: 10s)
	RedisPingTimeout      time.Duration // timeout for each ping attempt (ex: 5s)
	RedisPoolSize         int           // Redis connection pool size
	RedisConnectTimeout   time.Duration // Total time to retry connecting (ex: 30s)
	RedisRetryInterval    time.Duration // Initial wait between retries (ex: 2s, grows exponentially)
	RedisWarnThreshold    int           // warn after this many attempts

	AllowedHosts []string // optional, restrict access to specific Host headers
	AllowedCIDRS []string // optional, restrict access to specific IPs (e.g. "1.2.3.4, 5.6.7.8")
	TrustProxy   bool     // true => trust X-Forwarded-For headers (e.g. cloudflared)
}

func Load() *Config {
	cfg := &Config{
		// Server settings
		ListenPort:      getenv("PORTICO_LISTEN_PORT", ":8080"),
		ShutdownTimeout: mustDuration("PORTICO_SHUTDOWN_TIMEOUT", 5*time.Second),

		// Logging
		LogLevel:  getenv("PORTICO_LOG_LEVEL", "info"),
		PrettyLog: mustBool("PORTICO_PRETTY_LOG", true),

		// Sources
		TraefikAPIURL: getenv("PORTICO_TRAEFIK_API_URL", "http://traefik:8080"),
		HTTPTimeout:   mustDuration("PORTICO_HTTP_TIMEOUT", 5*time.Second),
		DockerHost:    getenv("PORTICO_DOCKER_HOST", "unix:///var/run/docker.sock"),
		ControlEntity: getenv("PORTICO_CONTROL_ENTITY", "portico"),
		OverridesFile: getenv("PORTICO_OVERRIDES_FILE", "/config/overrides.json"),

		// Output
		OutputDir:    getenv("PORTICO_OUTPUT_DIR", "/usr/share/nginx/html"),
		TemplateFile: getenv("PORTICO_TEMPLATE_FILE", ""),
		PageTitle:    getenv("PORTICO_PAGE_TITLE", "Portico"),
		OpenInNewTab: mustBool("PORTICO_OPEN_IN_NEW_TAB", false),
		ShowFooter:   mustBool("PORTICO_SHOW_FOOTER", true),
		SortBy:       getenv("PORTICO_SORT_BY", "default"),

		RefreshInterval: mustDuration("PORTICO_REFRESH_INTERVAL", 5*time.Minute),

		// Redis settings (optional, empty addr = snapshot cache disabled)
		RedisAddr:             getenv("PORTICO_REDIS_ADDR", ""),
		RedisUser:             getenv("PORTICO_REDIS_USERNAME", "default"),
		RedisPasswordRequired: mustBool("PORTICO_REDIS_PASSWORD_REQUIRED", false),
		RedisPassword:         getenv("PORTICO_REDIS_PASSWORD", ""),
		RedisDB:               getenvInt("PORTICO_REDIS_DB", 0),
		RedisDT:               mustDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
		RedisRT:               mustDuration("REDIS_READ_TIMEOUT", 3*time.Second),
		RedisWT:               mustDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		RedisMaxWait:          mustDuration("REDIS_MAX_WAIT", 10*time.Second),
		RedisPingTimeout:      mustDuration("REDIS_PING_TIMEOUT", 5*time.Second),
		RedisPoolSize:         getenvInt("REDIS_POOL_SIZE", 10),
		RedisConnectTimeout:   mustDuration("REDIS_CONNECT_TIMEOUT", 30*time.Second),
		RedisRetryInterval:    mustDuration("REDIS_RETRY_INTERVAL", 2*time.Second),
		RedisWarnThreshold:    getenvInt("REDIS_WARN_THRESHOLD", 3),

		// Access restrictions
		AllowedHosts: splitAndTrim(getenv("PORTICO_ALLOWED_HOSTS", "")),
		AllowedCIDRS: parseAllowedIPs(getenv("PORTICO_ALLOWED_CIDRS", "")),
		TrustProxy:   mustBool("PORTICO_TRUST_PROXY", true),
	}

	if cfg.TraefikAPIURL == "" {
		panic("❌ FATAL: PORTICO_TRAEFIK_API_URL must not be empty")
	}

	// Validate Redis password configuration
	if cfg.RedisAddr != "" && cfg.RedisPasswordRequired && cfg.RedisPassword == "" {
		panic("❌ FATAL: PORTICO_REDIS_PASSWORD is required when PORTICO_REDIS_PASSWORD_REQUIRED=true")
	}

	// Log config only in debug mode with redacted sensitive fields
	if cfg.LogLevel == "debug" {
		cfgCopy := *cfg
		if cfg.RedisPassword != "" {
			cfgCopy.RedisPassword = "***REDACTED***"
		}
		log.Printf("[DEBUG] cfg: %+v\n", cfgCopy)
	}

	return cfg
}

// helpers
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func requireEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		panic(fmt.Sprintf("❌ FATAL: Required environment variable %s is not set", key))
	}
	return v
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func mustBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func mustDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func parseAllowedIPs(allowed string) []string {
	if allowed == "" {
		return nil
	}
	ips := make([]string, 0, 4)
	for _, ip := range splitAndTrim(allowed) {
		if ip != "" {
			ips = append(ips, ip)
		}
	}
	return ips
}

func splitAndTrim(s string) []string {
	if s == "" {
		return nil
	}
	raw := strings.Split(s, ",")
	parts := make([]string, 0, len(raw))
	for _, part := range raw {
		trimmed := strings.TrimSpace(part)
		// Remove surrounding quotes if present
		trimmed = strings.Trim(trimmed, `"'`)
		if trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return parts
}
