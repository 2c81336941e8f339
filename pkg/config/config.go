// Package config loads the orca CLI settings.
//
// Settings are layered: struct defaults, then an optional YAML settings file,
// then ORCA_* environment variables. Command-line flags are applied on top by
// the commands themselves.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	"gopkg.in/yaml.v3"
)

type Settings struct {
	Log          LogSettings          `koanf:"log"`
	Output       OutputSettings       `koanf:"output"`
	Request      RequestSettings      `koanf:"request"`
	BuildService BuildServiceSettings `koanf:"build_service"`
}

type LogSettings struct {
	Level string `koanf:"level" validate:"oneof=debug info warn error disabled"`
	JSON  bool   `koanf:"json"`
}

type OutputSettings struct {
	Format string `koanf:"format" validate:"oneof=json yaml"`
	Dir    string `koanf:"dir"`
}

// RequestSettings are the execution request fallbacks used when a template does
// not set them.
type RequestSettings struct {
	LimitConcurrent         bool `koanf:"limit_concurrent"`
	MaxConcurrentExecutions int  `koanf:"max_concurrent_executions" validate:"gte=0"`
	KeepWaitingPipelines    bool `koanf:"keep_waiting_pipelines"`
}

type BuildServiceSettings struct {
	URL        string        `koanf:"url" validate:"omitempty,url"`
	Timeout    time.Duration `koanf:"timeout" validate:"gt=0"`
	MaxRetries uint64        `koanf:"max_retries"`
	Backoff    time.Duration `koanf:"backoff" validate:"gt=0"`
	MaxBackoff time.Duration `koanf:"max_backoff"`
}

func Default() *Settings {
	return &Settings{
		Log:    LogSettings{Level: "info"},
		Output: OutputSettings{Format: "json"},
		Request: RequestSettings{
			LimitConcurrent: true,
		},
		BuildService: BuildServiceSettings{
			Timeout:    30 * time.Second,
			MaxRetries: 5,
			Backoff:    time.Second,
			MaxBackoff: 30 * time.Second,
		},
	}
}

const envPrefix = "ORCA_"

var envMappings = map[string]string{
	"ORCA_LOG_LEVEL":                         "log.level",
	"ORCA_LOG_JSON":                          "log.json",
	"ORCA_OUTPUT_FORMAT":                     "output.format",
	"ORCA_OUTPUT_DIR":                        "output.dir",
	"ORCA_REQUEST_LIMIT_CONCURRENT":          "request.limit_concurrent",
	"ORCA_REQUEST_MAX_CONCURRENT_EXECUTIONS": "request.max_concurrent_executions",
	"ORCA_REQUEST_KEEP_WAITING_PIPELINES":    "request.keep_waiting_pipelines",
	"ORCA_BUILD_SERVICE_URL":                 "build_service.url",
	"ORCA_BUILD_SERVICE_TIMEOUT":             "build_service.timeout",
	"ORCA_BUILD_SERVICE_MAX_RETRIES":         "build_service.max_retries",
	"ORCA_BUILD_SERVICE_BACKOFF":             "build_service.backoff",
	"ORCA_BUILD_SERVICE_MAX_BACKOFF":         "build_service.max_backoff",
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Load builds the settings. settingsFile is optional.
func Load(settingsFile string) (*Settings, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(Default(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if settingsFile != "" {
		contents, err := os.ReadFile(filepath.Clean(settingsFile))
		if err != nil {
			return nil, err
		}
		var data map[string]any
		if err := yaml.Unmarshal(contents, &data); err != nil {
			return nil, fmt.Errorf("could not parse %s: %w", settingsFile, err)
		}
		if err := k.Load(rawMap(data), nil); err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", settingsFile, err)
		}
	}

	if err := k.Load(env.Provider(".", env.Opt{
		Prefix: envPrefix,
		TransformFunc: func(key, value string) (string, any) {
			path, ok := envMappings[key]
			if !ok {
				return "", nil
			}
			return path, value
		},
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	var s Settings
	if err := k.UnmarshalWithConf("", &s, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("failed to unmarshal settings: %w", err)
	}
	if err := validate.Struct(&s); err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}
	return &s, nil
}

// rawMap is a koanf.Provider for already decoded data.
type rawMap map[string]any

func (r rawMap) ReadBytes() ([]byte, error) {
	return nil, fmt.Errorf("rawMap provider does not support ReadBytes")
}

func (r rawMap) Read() (map[string]any, error) {
	return r, nil
}
