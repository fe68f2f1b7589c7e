package config

import (
	"log"
	"os"
	"path/filepath"
	"sync"
)

var (
	globalConfig Provider
	once         sync.Once
)

// Init initializes the package-level global configuration exactly once;
// subsequent calls are no-ops, matching sync.Once semantics.
func Init(opts ...Option) error {
	var err error
	once.Do(func() {
		var cfg *Configuration
		cfg, err = New(opts...)
		if err != nil {
			return
		}
		globalConfig = cfg
	})
	return err
}

// Get returns the global Provider, lazily initializing it with defaults if
// Init was never called.
func Get() Provider {
	if globalConfig == nil {
		if err := Init(); err != nil {
			log.Printf("config: default initialization failed: %v", err)
		}
	}
	return globalConfig
}

// AutoInit probes the working directory (and a few conventional
// subdirectories) for a config file named "config.{yaml,yml,json,toml}",
// falling back to environment variables alone under appName's prefix if
// none is found.
func AutoInit(appName string) error {
	candidates := []string{
		"config.yaml", "config.yml", "config.json", "config.toml",
	}
	dirs := []string{".", "configs", "conf"}

	var found string
	for _, dir := range dirs {
		for _, name := range candidates {
			path := filepath.Join(dir, name)
			if fileExists(path) {
				found = path
				break
			}
		}
		if found != "" {
			break
		}
	}

	if found == "" {
		return Init(WithEnvPrefix(appName + "_"))
	}
	return Init(WithConfigFile(found), WithEnvPrefix(appName+"_"))
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
