package fold

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// configName is the config file looked up in the working directory when
// -config is not given.
const configName = ".pyfold.yml"

// Config is the on-disk configuration of the formatter.
type Config struct {
	// Exclude lists glob patterns; files matching any of them (by full path
	// or by base name) are skipped.
	Exclude []string `yaml:"exclude"`
	// Cache is the path of the result cache database. Empty disables the
	// cache.
	Cache string `yaml:"cache"`
	// Write makes writing results back to source files the default, as if -w
	// was always given.
	Write bool `yaml:"write"`
}

// loadConfig reads the config file at path, or configName in the working
// directory if path is empty. A missing default config file is not an error.
func loadConfig(path string) (Config, error) {
	var cfg Config
	explicit := path != ""
	if !explicit {
		path = configName
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return cfg, err
	}
	err = yaml.Unmarshal(data, &cfg)
	return cfg, err
}

// excludes reports whether name matches one of the exclude patterns.
func (cfg *Config) excludes(name string) bool {
	for _, pat := range cfg.Exclude {
		if ok, _ := filepath.Match(pat, name); ok {
			return true
		}
		if ok, _ := filepath.Match(pat, filepath.Base(name)); ok {
			return true
		}
	}
	return false
}
