package mail

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"time"

	"github.com/goccy/go-yaml"
)

const (
	// DefaultHost is the SMTP relay used when no host is configured
	DefaultHost = "smtp.gmail.com"
	// DefaultPort is the SMTP submission port
	DefaultPort = 587
	// DefaultTimeout bounds dialing and the whole SMTP exchange
	DefaultTimeout = 30 * time.Second
)

// Config represents SMTP relay settings
type Config struct {
	Host       string `yaml:"host"`
	Port       int    `yaml:"port"`
	Timeout    string `yaml:"timeout"`
	RequireTLS bool   `yaml:"requireTLS"`
	timeout    time.Duration
}

// DefaultConfig returns settings for the Gmail submission relay
func DefaultConfig() *Config {
	return &Config{Host: DefaultHost, Port: DefaultPort, Timeout: DefaultTimeout.String(), RequireTLS: true, timeout: DefaultTimeout}
}

// Addr returns relay host:port
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// TimeoutDuration returns parsed timeout
func (c *Config) TimeoutDuration() time.Duration {
	if c.timeout == 0 {
		return DefaultTimeout
	}
	return c.timeout
}

// Init validates config and fills defaults
func (c *Config) Init() error {
	if c.Host == "" {
		c.Host = DefaultHost
	}
	if c.Port == 0 {
		c.Port = DefaultPort
	}
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Port)
	}
	if c.Timeout == "" {
		c.timeout = DefaultTimeout
		return nil
	}
	timeout, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return fmt.Errorf("invalid timeout %q: %w", c.Timeout, err)
	}
	if timeout <= 0 {
		return fmt.Errorf("invalid timeout: %v", c.Timeout)
	}
	c.timeout = timeout
	return nil
}

// configDocument mirrors Config with optional fields, so absent keys keep defaults
type configDocument struct {
	Host       *string `yaml:"host"`
	Port       *int    `yaml:"port"`
	Timeout    *string `yaml:"timeout"`
	RequireTLS *bool   `yaml:"requireTLS"`
}

// ParseConfig decodes YAML settings on top of DefaultConfig
func ParseConfig(data []byte) (*Config, error) {
	doc := &configDocument{}
	if err := yaml.Unmarshal(data, doc); err != nil {
		return nil, fmt.Errorf("failed to decode mail config: %w", err)
	}
	result := DefaultConfig()
	if doc.Host != nil {
		result.Host = *doc.Host
	}
	if doc.Port != nil {
		result.Port = *doc.Port
	}
	if doc.Timeout != nil {
		result.Timeout = *doc.Timeout
	}
	if doc.RequireTLS != nil {
		result.RequireTLS = *doc.RequireTLS
	}
	if err := result.Init(); err != nil {
		return nil, err
	}
	return result, nil
}

// LoadConfig reads YAML settings from a file
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read mail config %v: %w", path, err)
	}
	return ParseConfig(data)
}
