package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultNVDURL is the NVD CVE API 2.0 search endpoint.
const DefaultNVDURL = "https://services.nvd.nist.gov/rest/json/cves/2.0"

// API describes HTTP-layer and upstream configuration.
type API struct {
	BindAddr     string
	StaticDir    string
	CORSOrigins  []string
	MaxFormBytes int
	NVD          NVD
}

// NVD holds the upstream advisory source settings.
type NVD struct {
	URL     string
	APIKey  string
	Timeout time.Duration
}

// fileConfig is the optional YAML credentials file.
type fileConfig struct {
	NVDAPIKey string `yaml:"nvd_api_key"`
	NVDAPIURL string `yaml:"nvd_api_url"`
}

// LoadAPI builds an API config from environment variables, falling back to
// the file named by NVD_CONFIG_FILE for the upstream URL and key.
func LoadAPI() (*API, error) {
	file, err := loadFile(getEnv("NVD_CONFIG_FILE", ""))
	if err != nil {
		return nil, err
	}

	c := &API{
		BindAddr:     getEnv("API_BIND_ADDR", "0.0.0.0:8000"),
		StaticDir:    getEnv("STATIC_DIR", ""),
		CORSOrigins:  splitAndTrim(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		MaxFormBytes: getInt("API_MAX_FORM_BYTES", 64<<10),
		NVD: NVD{
			URL:     getEnv("NVD_API_URL", firstNonEmpty(file.NVDAPIURL, DefaultNVDURL)),
			APIKey:  getEnv("NVD_API_KEY", file.NVDAPIKey),
			Timeout: getDuration("NVD_TIMEOUT", "15s"),
		},
	}

	if c.NVD.Timeout <= 0 {
		return nil, fmt.Errorf("NVD_TIMEOUT must be positive")
	}
	if c.MaxFormBytes <= 0 {
		return nil, fmt.Errorf("API_MAX_FORM_BYTES must be positive")
	}
	if strings.TrimSpace(c.NVD.URL) == "" {
		return nil, fmt.Errorf("NVD_API_URL cannot be empty")
	}
	if len(c.CORSOrigins) == 0 {
		return nil, fmt.Errorf("CORS_ALLOWED_ORIGINS must contain at least one origin")
	}
	if c.StaticDir != "" {
		info, err := os.Stat(c.StaticDir)
		if err != nil {
			return nil, fmt.Errorf("STATIC_DIR: %w", err)
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("STATIC_DIR %q is not a directory", c.StaticDir)
		}
	}

	return c, nil
}

func loadFile(path string) (fileConfig, error) {
	var fc fileConfig
	if path == "" {
		return fc, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fc, fmt.Errorf("NVD_CONFIG_FILE %q not found", path)
		}
		return fc, fmt.Errorf("read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fc, fmt.Errorf("parse config file %q: %w", path, err)
	}
	fc.NVDAPIKey = strings.TrimSpace(fc.NVDAPIKey)
	fc.NVDAPIURL = strings.TrimSpace(fc.NVDAPIURL)
	return fc, nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return fallback
}

func getDuration(key, fallback string) time.Duration {
	raw := getEnv(key, fallback)
	d, err := time.ParseDuration(raw)
	if err != nil {
		fd, ferr := time.ParseDuration(fallback)
		if ferr != nil {
			panic(fmt.Sprintf("invalid fallback duration %q: %v", fallback, ferr))
		}
		return fd
	}
	return d
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
