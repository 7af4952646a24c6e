// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package serve

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Config is the configuration of a [Server]. It can be loaded from a
// TOML or YAML file with [LoadConfig].
type Config struct {

	// Addr is the TCP address to listen on.
	Addr string `toml:"addr" yaml:"addr"`

	// Path is the URL path of the WebSocket endpoint.
	Path string `toml:"path" yaml:"path"`

	// Title is the title of the page served at the root.
	Title string `toml:"title" yaml:"title"`

	// MaxMessageSize is the maximum size in bytes of an event message
	// sent by a client.
	MaxMessageSize int64 `toml:"max_message_size" yaml:"max_message_size"`

	// WriteTimeout is the number of seconds allowed for sending a frame
	// to a client; 0 means no timeout.
	WriteTimeout int `toml:"write_timeout" yaml:"write_timeout"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Addr:           "localhost:8080",
		Path:           "/barista",
		Title:          "Barista",
		MaxMessageSize: 64 << 10,
		WriteTimeout:   10,
	}
}

// LoadConfig loads the configuration from the given file on top of the
// defaults. The format is chosen by extension: .toml, or .yaml / .yml.
func LoadConfig(filename string) (*Config, error) {
	b, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	switch ext := strings.ToLower(filepath.Ext(filename)); ext {
	case ".toml":
		err = toml.Unmarshal(b, cfg)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(b, cfg)
	default:
		return nil, fmt.Errorf("serve.LoadConfig: unsupported config file extension %q", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("serve.LoadConfig: %s: %w", filename, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("serve.LoadConfig: %s: %w", filename, err)
	}
	return cfg, nil
}

// Validate returns an error if the configuration cannot be served.
func (c *Config) Validate() error {
	if !strings.HasPrefix(c.Path, "/") || c.Path == "/" || c.Path == "/client.js" {
		return fmt.Errorf("invalid WebSocket path %q", c.Path)
	}
	if c.MaxMessageSize <= 0 {
		return fmt.Errorf("max_message_size must be positive, not %d", c.MaxMessageSize)
	}
	if c.WriteTimeout < 0 {
		return fmt.Errorf("write_timeout must not be negative, not %d", c.WriteTimeout)
	}
	return nil
}
