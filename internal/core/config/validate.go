package config

import (
	"fmt"
	"os"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/hay-kot/criterio"
)

// ValidationWarning represents a non-fatal configuration issue.
type ValidationWarning struct {
	Category string `json:"category"`
	Item     string `json:"item,omitempty"`
	Message  string `json:"message"`
}

// ValidateDeep performs comprehensive validation including file
// accessibility and glob syntax. This calls Validate() first for basic
// structural validation, then adds I/O checks. The configPath argument
// specifies the config file location (empty skips that check).
func (c *Config) ValidateDeep(configPath string) error {
	if err := c.Validate(); err != nil {
		return err
	}

	return criterio.ValidateStruct(
		validateConfigFile(configPath),
		criterio.Run("tables.dir", c.Tables.Dir, isDirectoryOrNotExist),
		criterio.Run("tables.glob", c.Tables.Glob, isValidGlob),
		c.validateKeymap(),
	)
}

// Warnings returns non-fatal configuration issues.
func (c *Config) Warnings() []ValidationWarning {
	var warnings []ValidationWarning

	if c.Tables.Dir == "" && c.Tables.Active != "" {
		warnings = append(warnings, ValidationWarning{
			Category: "Tables",
			Item:     c.Tables.Active,
			Message:  "active table set without a tables dir; it must be a builtin id",
		})
	}
	if c.Display.BlinkIntervalMS > 0 && c.Display.BlinkIntervalMS < 100 {
		warnings = append(warnings, ValidationWarning{
			Category: "Display",
			Message:  fmt.Sprintf("blink interval of %dms is likely too fast to read", c.Display.BlinkIntervalMS),
		})
	}

	return warnings
}

func validateConfigFile(configPath string) error {
	if configPath == "" {
		return nil
	}

	info, err := os.Stat(configPath)
	if os.IsNotExist(err) {
		return nil // not found is fine, using defaults
	}
	if err != nil {
		return criterio.NewFieldErrors("config_file", fmt.Errorf("cannot access: %w", err))
	}
	if info.IsDir() {
		return criterio.NewFieldErrors("config_file", fmt.Errorf("%s is a directory, not a file", configPath))
	}
	return nil
}

// isDirectoryOrNotExist validates that a path is a directory or doesn't exist.
func isDirectoryOrNotExist(path string) error {
	if path == "" {
		return nil
	}
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("cannot access: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("exists but is not a directory")
	}
	return nil
}

func isValidGlob(pattern string) error {
	if pattern == "" {
		return nil
	}
	if !doublestar.ValidatePattern(pattern) {
		return fmt.Errorf("invalid glob pattern %q", pattern)
	}
	return nil
}

// validateKeymap flags duplicate bindings of global commands, which are
// legal but usually a mistake.
func (c *Config) validateKeymap() error {
	var errs criterio.FieldErrorsBuilder
	for key, name := range c.Keymap {
		if name == "none" {
			errs = errs.Append(fmt.Sprintf("keymap[%q]", key), fmt.Errorf("binding to %q has no effect; remove it instead", name))
		}
	}
	return errs.ToError()
}
