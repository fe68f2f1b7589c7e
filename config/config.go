// Package config provides the demo server's layered configuration: a file
// (TOML/YAML/JSON) overlaid by environment variables, with fsnotify-driven
// hot reload of the file layer. It configures the demo server's listen
// address, observability toggles, and bloom filter sizing — it never
// touches a kedge.Table's route entries, which remain fixed for the
// process's lifetime (see the router core's no-hot-reload invariant).
package config

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/mitchellh/mapstructure"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Provider is the read/write surface the demo server and its middleware
// depend on, rather than the concrete Configuration type, so callers can be
// tested against a fake.
type Provider interface {
	Get(key string) (any, bool)
	GetString(key string) string
	GetInt(key string) int
	GetBool(key string) bool
	GetDuration(key string) time.Duration
	Set(key string, value any)
	Has(key string) bool
	AddChangeListener(listener func(key string))
	Unmarshal(key string, v any) error
}

// Configuration is the Provider implementation: an in-memory key/value map
// loaded from a config file and overlaid with environment variables, with
// an optional background watcher that reloads the file layer on write.
type Configuration struct {
	data map[string]any

	envPrefix  string
	configFile string
	fileFormat string

	watcher   *fsnotify.Watcher
	listeners []func(string)

	mu sync.RWMutex
}

// Option configures a Configuration at construction time.
type Option func(*Configuration)

// WithEnvPrefix sets the prefix (e.g. "KEDGE_") used to select environment
// variables; KEDGE_LISTEN_ADDR becomes the key "listen.addr".
func WithEnvPrefix(prefix string) Option {
	return func(c *Configuration) { c.envPrefix = prefix }
}

// WithConfigFile sets the path of the config file and infers its format
// (yaml/json/toml) from its extension.
func WithConfigFile(file string) Option {
	return func(c *Configuration) {
		c.configFile = file
		switch strings.ToLower(filepath.Ext(file)) {
		case ".yaml", ".yml":
			c.fileFormat = "yaml"
		case ".json":
			c.fileFormat = "json"
		case ".toml":
			c.fileFormat = "toml"
		default:
			c.fileFormat = "unknown"
		}
	}
}

// WithFormat overrides format auto-detection from WithConfigFile.
func WithFormat(format string) Option {
	return func(c *Configuration) { c.fileFormat = format }
}

// New builds a Configuration, performs an initial Load, and — if a config
// file was set — starts a background goroutine watching it for writes.
func New(opts ...Option) (*Configuration, error) {
	c := &Configuration{data: make(map[string]any)}
	for _, opt := range opts {
		opt(c)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("config: creating file watcher: %w", err)
	}
	c.watcher = watcher

	if err := c.Load(); err != nil {
		return nil, err
	}

	if c.configFile != "" {
		go c.watchConfigFile()
	}
	return c, nil
}

// Load re-reads the config file (if any) and re-applies the environment
// variable overlay, which always takes precedence over file values.
func (c *Configuration) Load() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.configFile != "" {
		if err := c.loadConfigFile(); err != nil {
			return err
		}
	}
	c.loadEnvironmentVariables()
	return nil
}

func (c *Configuration) loadConfigFile() error {
	file, err := os.Open(c.configFile)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("config: opening config file: %w", err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return fmt.Errorf("config: reading config file: %w", err)
	}

	var parsed map[string]any
	switch c.fileFormat {
	case "yaml":
		if err := yaml.Unmarshal(data, &parsed); err != nil {
			return fmt.Errorf("config: parsing yaml: %w", err)
		}
	case "json":
		if err := json.Unmarshal(data, &parsed); err != nil {
			return fmt.Errorf("config: parsing json: %w", err)
		}
	case "toml":
		if err := toml.Unmarshal(data, &parsed); err != nil {
			return fmt.Errorf("config: parsing toml: %w", err)
		}
	default:
		return fmt.Errorf("config: unsupported file format %q", c.fileFormat)
	}

	for k, v := range parsed {
		c.data[k] = v
	}
	return nil
}

func (c *Configuration) loadEnvironmentVariables() {
	for _, env := range os.Environ() {
		if !strings.HasPrefix(env, c.envPrefix) {
			continue
		}
		parts := strings.SplitN(env, "=", 2)
		if len(parts) != 2 {
			continue
		}
		key := strings.ToLower(strings.TrimPrefix(parts[0], c.envPrefix))
		key = strings.ReplaceAll(key, "_", ".")
		c.data[key] = parts[1]
	}
}

func (c *Configuration) watchConfigFile() {
	if err := c.watcher.Add(filepath.Dir(c.configFile)); err != nil {
		return
	}
	for {
		select {
		case event, ok := <-c.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) != 0 && event.Name == c.configFile {
				if err := c.Load(); err == nil {
					c.notifyListeners("")
				}
			}
		case _, ok := <-c.watcher.Errors:
			if !ok {
				return
			}
		}
	}
}

func (c *Configuration) notifyListeners(key string) {
	c.mu.RLock()
	listeners := make([]func(string), len(c.listeners))
	copy(listeners, c.listeners)
	c.mu.RUnlock()

	for _, listener := range listeners {
		listener(key)
	}
}

// Get looks up key directly, then as a dot-separated path into nested maps.
func (c *Configuration) Get(key string) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if value, ok := c.data[key]; ok {
		return value, true
	}

	parts := strings.Split(key, ".")
	current := c.data
	for i, part := range parts {
		v, ok := current[part]
		if !ok {
			return nil, false
		}
		if i == len(parts)-1 {
			return v, true
		}
		nested, ok := v.(map[string]any)
		if !ok {
			return nil, false
		}
		current = nested
	}
	return nil, false
}

func (c *Configuration) GetString(key string) string {
	value, ok := c.Get(key)
	if !ok {
		return ""
	}
	if str, ok := value.(string); ok {
		return str
	}
	return fmt.Sprintf("%v", value)
}

func (c *Configuration) GetInt(key string) int {
	value, ok := c.Get(key)
	if !ok {
		return 0
	}
	switch v := value.(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	case string:
		var i int
		if _, err := fmt.Sscanf(v, "%d", &i); err == nil {
			return i
		}
	}
	return 0
}

func (c *Configuration) GetBool(key string) bool {
	value, ok := c.Get(key)
	if !ok {
		return false
	}
	switch v := value.(type) {
	case bool:
		return v
	case string:
		return strings.EqualFold(v, "true") || v == "1"
	case int:
		return v != 0
	}
	return false
}

func (c *Configuration) GetDuration(key string) time.Duration {
	value, ok := c.Get(key)
	if !ok {
		return 0
	}
	switch v := value.(type) {
	case time.Duration:
		return v
	case int:
		return time.Duration(v) * time.Second
	case float64:
		return time.Duration(v) * time.Second
	case string:
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return 0
}

// Set overrides key's value in memory and notifies change listeners. It
// does not write back to the config file.
func (c *Configuration) Set(key string, value any) {
	c.mu.Lock()
	c.data[key] = value
	c.mu.Unlock()
	go c.notifyListeners(key)
}

func (c *Configuration) Has(key string) bool {
	_, ok := c.Get(key)
	return ok
}

func (c *Configuration) AddChangeListener(listener func(key string)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.listeners = append(c.listeners, listener)
}

// Unmarshal decodes the value at key into v using mapstructure, with struct
// tag "config".
func (c *Configuration) Unmarshal(key string, v any) error {
	value, ok := c.Get(key)
	if !ok {
		return fmt.Errorf("config: key %q not set", key)
	}
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:  v,
		TagName: "config",
	})
	if err != nil {
		return fmt.Errorf("config: building decoder: %w", err)
	}
	return decoder.Decode(value)
}

// Close stops the background file watcher, if one was started.
func (c *Configuration) Close() error {
	if c.watcher != nil {
		return c.watcher.Close()
	}
	return nil
}
