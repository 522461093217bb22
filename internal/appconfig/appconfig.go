// internal/appconfig/appconfig.go
// Package appconfig manages loading and interpreting application configuration.
package appconfig

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/mwiater/autoworker/internal/entity"
	"github.com/mwiater/autoworker/internal/lang"
)

const (
	// DefaultConfigPath is the default path to the application's configuration file.
	DefaultConfigPath = "config/config.json"
	// DefaultLanguage is used when the configuration does not name a language.
	DefaultLanguage = "python"
	// defaultLogFile is the log file written when logFile is not configured.
	defaultLogFile = "autoworker.log"
)

// Operation names a pipeline step whose required settings Validate checks.
type Operation string

const (
	// OpBundle assembles a bundle document from a test file.
	OpBundle Operation = "bundle"
	// OpAppend appends a bundle document to the dataset.
	OpAppend Operation = "append"
	// OpRun bundles and appends one test file.
	OpRun Operation = "run"
	// OpRunAll splits a multi-test file and runs every case.
	OpRunAll Operation = "run-all"
)

// Config represents the top-level application configuration.
type Config struct {
	TestFile        string `json:"testFile" mapstructure:"testFile"`
	EntityDir       string `json:"entityDir" mapstructure:"entityDir"`
	Framework       string `json:"framework" mapstructure:"framework"`
	LanguageTag     string `json:"language" mapstructure:"language"`
	OutputPath      string `json:"output" mapstructure:"output"`
	CasesFile       string `json:"casesFile,omitempty" mapstructure:"casesFile"`
	EntityExt       string `json:"entityExt,omitempty" mapstructure:"entityExt"`
	WordBoundary    bool   `json:"wordBoundary" mapstructure:"wordBoundary"`
	UnescapeCode    bool   `json:"unescapeCode" mapstructure:"unescapeCode"`
	DatasetLock     bool   `json:"datasetLock" mapstructure:"datasetLock"`
	ContinueOnError bool   `json:"continueOnError" mapstructure:"continueOnError"`
	CacheSize       int    `json:"cacheSize,omitempty" mapstructure:"cacheSize"`
	LogFile         string `json:"logFile,omitempty" mapstructure:"logFile"`
	Debug           bool   `json:"debug" mapstructure:"debug"`
	JSONMode        bool   `json:"jsonMode" mapstructure:"jsonMode"`
	ConfigPath      string `json:"-" mapstructure:"-"`
}

// Defaults returns a configuration with every optional setting filled in.
func Defaults() Config {
	return Config{
		LanguageTag: DefaultLanguage,
		EntityExt:   entity.DefaultExtension,
		DatasetLock: true,
		CacheSize:   entity.DefaultCacheSize,
	}
}

// Language parses the configured language tag.
func (c Config) Language() (lang.Language, error) {
	tag := c.LanguageTag
	if strings.TrimSpace(tag) == "" {
		tag = DefaultLanguage
	}
	return lang.Parse(tag)
}

// EntityExtension returns the entity file extension with a leading dot.
func (c Config) EntityExtension() string {
	return entity.NormalizeExtension(c.EntityExt)
}

// CacheEntries returns the entity cache size, falling back to the default.
func (c Config) CacheEntries() int {
	if c.CacheSize <= 0 {
		return entity.DefaultCacheSize
	}
	return c.CacheSize
}

// LogFilePath returns the path to the application log file, applying a default if not set.
func (c Config) LogFilePath() string {
	if path := c.LogFile; strings.TrimSpace(path) != "" {
		return path
	}
	return defaultLogFile
}

// Validate reports the settings missing for op.
func (c Config) Validate(op Operation) error {
	var missing []string
	need := func(name, value string) {
		if strings.TrimSpace(value) == "" {
			missing = append(missing, name)
		}
	}

	switch op {
	case OpBundle:
		need("testFile", c.TestFile)
		need("entityDir", c.EntityDir)
		need("framework", c.Framework)
	case OpAppend:
		need("testFile", c.TestFile)
		need("output", c.OutputPath)
	case OpRun:
		need("testFile", c.TestFile)
		need("entityDir", c.EntityDir)
		need("framework", c.Framework)
		need("output", c.OutputPath)
	case OpRunAll:
		need("casesFile", c.CasesFile)
		need("testFile", c.TestFile)
		need("entityDir", c.EntityDir)
		need("framework", c.Framework)
		need("output", c.OutputPath)
	default:
		return fmt.Errorf("unknown operation %q", op)
	}

	if len(missing) > 0 {
		return fmt.Errorf("invalid configuration for %s: missing %s", op, strings.Join(missing, ", "))
	}
	if op != OpAppend {
		if _, err := c.Language(); err != nil {
			return fmt.Errorf("invalid configuration for %s: %w", op, err)
		}
	}
	return nil
}

// Load reads the application configuration from the specified path. Settings
// absent from the file keep their Defaults values.
func Load(path string) (Config, error) {
	if path == "" {
		path = DefaultConfigPath
	}

	config, err := loadFromPath(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("no configuration file found at %q", path)
		}
		return Config{}, fmt.Errorf("could not read config file %q: %w", path, err)
	}
	config.ConfigPath = path
	return config, nil
}

// loadFromPath is a helper function that loads the configuration from a specific file path.
func loadFromPath(path string) (Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return Config{}, err
	}
	defer file.Close()

	config := Defaults()
	if err := json.NewDecoder(file).Decode(&config); err != nil {
		return Config{}, err
	}
	return config, nil
}
