// Package config loads the gateway's YAML configuration: the per-datum
// size cap and extra-column policy consumed by the translation pipeline,
// the default row-option triple for mutation scripts, and the default
// export format.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/reoring/datagate/export"
	"github.com/reoring/datagate/script"
	"github.com/reoring/datagate/translate"
)

// Config is the validated gateway configuration.
type Config struct {
	MaxDatumBytes       int64  `yaml:"max_datum_bytes"`
	IgnoreExtraColumns  bool   `yaml:"ignore_extra_columns"`
	DefaultExportFormat string `yaml:"default_export_format"`
	Truncate            bool   `yaml:"truncate"`
	UpdateMode          string `yaml:"update_mode"`
	FatalRowErrors      bool   `yaml:"fatal_row_errors"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		MaxDatumBytes:       1 << 20,
		DefaultExportFormat: export.FormatJSON.Name,
		UpdateMode:          script.UpdateMerge.String(),
		FatalRowErrors:      true,
	}
}

// Parse decodes YAML over the defaults and validates the result.
func Parse(b []byte) (Config, error) {
	c := Default()
	if err := yaml.Unmarshal(b, &c); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Load reads and parses the configuration file at path.
func Load(path string) (Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	return Parse(b)
}

// Validate checks the enumerated fields.
func (c Config) Validate() error {
	if c.UpdateMode != script.UpdateMerge.String() && c.UpdateMode != script.UpdateReplace.String() {
		return fmt.Errorf("config: update_mode must be merge or replace, got %q", c.UpdateMode)
	}
	if _, ok := export.ByExtension(c.DefaultExportFormat); !ok {
		return fmt.Errorf("config: unknown default_export_format %q", c.DefaultExportFormat)
	}
	if c.MaxDatumBytes < 0 {
		return fmt.Errorf("config: max_datum_bytes must not be negative")
	}
	return nil
}

// RowOptions projects the configured row-option triple for script writers.
func (c Config) RowOptions() script.RowOptions {
	mode := script.UpdateMerge
	if c.UpdateMode == script.UpdateReplace.String() {
		mode = script.UpdateReplace
	}
	return script.RowOptions{
		Truncate:       c.Truncate,
		Update:         mode,
		FatalRowErrors: c.FatalRowErrors,
	}
}

// TranslateOptions projects the pipeline options for a dataset request.
func (c Config) TranslateOptions(dataset string) translate.Options {
	return translate.Options{
		IgnoreExtraColumns: c.IgnoreExtraColumns,
		MaxDatumBytes:      c.MaxDatumBytes,
		Dataset:            dataset,
	}
}
