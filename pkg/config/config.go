// Package config provides configuration loading for the repool CLI
package config

import (
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ajitpratap0/repool/pkg/repoolerrors"
)

// BenchConfig configures a bench run of the pooling scenarios.
type BenchConfig struct {
	// Iterations is the number of acquire/release cycles to run.
	Iterations int `yaml:"iterations"`
	// PayloadSize is the byte-slice payload size of each pooled message.
	PayloadSize int `yaml:"payload_size"`
	// Warmup is the number of instances released into the pool before timing.
	Warmup int `yaml:"warmup"`
	// LogLevel sets the logger level for the run.
	LogLevel string `yaml:"log_level"`
}

// DefaultBenchConfig returns sensible defaults for a bench run.
func DefaultBenchConfig() *BenchConfig {
	return &BenchConfig{
		Iterations:  100000,
		PayloadSize: 1024,
		Warmup:      0,
		LogLevel:    "info",
	}
}

// Validate checks the config for values the bench cannot run with.
func (c *BenchConfig) Validate() error {
	if c.Iterations <= 0 {
		return repoolerrors.New(repoolerrors.ErrorTypeValidation, "iterations must be positive").
			WithDetail("iterations", c.Iterations)
	}
	if c.PayloadSize < 0 {
		return repoolerrors.New(repoolerrors.ErrorTypeValidation, "payload_size must not be negative").
			WithDetail("payload_size", c.PayloadSize)
	}
	if c.Warmup < 0 {
		return repoolerrors.New(repoolerrors.ErrorTypeValidation, "warmup must not be negative").
			WithDetail("warmup", c.Warmup)
	}
	return nil
}

// Load loads a configuration from a YAML file
func Load(filePath string, config interface{}) error {
	data, err := os.ReadFile(filePath) //nolint:gosec // G304: File path is controlled by caller and validated
	if err != nil {
		return repoolerrors.Wrap(err, repoolerrors.ErrorTypeFile, "failed to read config file").
			WithDetail("file", filePath)
	}

	// Substitute environment variables
	content := string(data)
	content = substituteEnvVars(content)

	if err := yaml.Unmarshal([]byte(content), config); err != nil {
		return repoolerrors.Wrap(err, repoolerrors.ErrorTypeValidation, "failed to parse YAML").
			WithDetail("file", filePath)
	}

	return nil
}

// Save saves a configuration to a YAML file
func Save(filePath string, config interface{}) error {
	data, err := yaml.Marshal(config)
	if err != nil {
		return repoolerrors.Wrap(err, repoolerrors.ErrorTypeInternal, "failed to marshal YAML")
	}

	if err := os.WriteFile(filePath, data, 0644); err != nil { //nolint:gosec
		return repoolerrors.Wrap(err, repoolerrors.ErrorTypeFile, "failed to write config file").
			WithDetail("file", filePath)
	}

	return nil
}

// substituteEnvVars replaces ${VAR_NAME} with environment variable values
func substituteEnvVars(content string) string {
	for {
		start := strings.Index(content, "${")
		if start == -1 {
			break
		}
		end := strings.Index(content[start:], "}")
		if end == -1 {
			break
		}
		end += start

		varName := content[start+2 : end]
		envValue := os.Getenv(varName)
		content = content[:start] + envValue + content[end+1:]
	}

	return content
}
