// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	// OutputFormatNix renders a Nix expression.
	// Output formats are defined locally to avoid coupling config to internal/render;
	// the CLI casts to render.Format at the boundary.
	OutputFormatNix OutputFormat = "nix"
	// OutputFormatJSON renders a JSON document.
	OutputFormatJSON OutputFormat = "json"
	// OutputFormatTOML renders a TOML document.
	OutputFormatTOML OutputFormat = "toml"
	// OutputFormatYAML renders a YAML document.
	OutputFormatYAML OutputFormat = "yaml"

	// ErrorPolicyAbort stops the conversion at the first failing entry.
	ErrorPolicyAbort ErrorPolicy = "abort"
	// ErrorPolicySkip reports failing entries and keeps converting.
	ErrorPolicySkip ErrorPolicy = "skip"

	// ColorSchemeAuto detects the terminal color scheme automatically.
	ColorSchemeAuto ColorScheme = "auto"
	// ColorSchemeDark forces dark color scheme.
	ColorSchemeDark ColorScheme = "dark"
	// ColorSchemeLight forces light color scheme.
	ColorSchemeLight ColorScheme = "light"

	// DefaultPrefetchCommand is the command used to hash remote sources.
	DefaultPrefetchCommand = "nix flake prefetch --json --extra-experimental-features 'nix-command flakes'"
	// DefaultPrefetchAttempts is the default number of tries per locator.
	DefaultPrefetchAttempts = 3
	// DefaultPrefetchTimeout is the default bound on a single try.
	DefaultPrefetchTimeout = 5 * time.Minute
	// DefaultJobs is the default number of entries decoded concurrently.
	DefaultJobs = 4
)

var (
	// ErrInvalidOutputFormat is returned when an OutputFormat value is not recognized.
	ErrInvalidOutputFormat = errors.New("invalid output format")
	// ErrInvalidErrorPolicy is returned when an ErrorPolicy value is not recognized.
	ErrInvalidErrorPolicy = errors.New("invalid error policy")
	// ErrInvalidColorScheme is returned when a ColorScheme value is not recognized.
	ErrInvalidColorScheme = errors.New("invalid color scheme")
	// ErrInvalidPrefetchConfig is the sentinel error wrapped by InvalidPrefetchConfigError.
	ErrInvalidPrefetchConfig = errors.New("invalid prefetch config")
	// ErrInvalidConvertConfig is the sentinel error wrapped by InvalidConvertConfigError.
	ErrInvalidConvertConfig = errors.New("invalid convert config")
	// ErrInvalidUIConfig is the sentinel error wrapped by InvalidUIConfigError.
	ErrInvalidUIConfig = errors.New("invalid UI config")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
)

type (
	// OutputFormat selects how converted packages are written.
	OutputFormat string

	// InvalidOutputFormatError is returned when an OutputFormat value is not recognized.
	// It wraps ErrInvalidOutputFormat for errors.Is() compatibility.
	InvalidOutputFormatError struct {
		Value OutputFormat
	}

	// ErrorPolicy selects what happens when a lockfile entry cannot be converted.
	ErrorPolicy string

	// InvalidErrorPolicyError is returned when an ErrorPolicy value is not recognized.
	// It wraps ErrInvalidErrorPolicy for errors.Is() compatibility.
	InvalidErrorPolicyError struct {
		Value ErrorPolicy
	}

	// ColorScheme specifies the terminal color scheme preference.
	ColorScheme string

	// InvalidColorSchemeError is returned when a ColorScheme value is not recognized.
	// It wraps ErrInvalidColorScheme for errors.Is() compatibility.
	InvalidColorSchemeError struct {
		Value ColorScheme
	}

	// InvalidPrefetchConfigError is returned when a PrefetchConfig has invalid fields.
	InvalidPrefetchConfigError struct {
		FieldErrors []error
	}

	// InvalidConvertConfigError is returned when a ConvertConfig has invalid fields.
	InvalidConvertConfigError struct {
		FieldErrors []error
	}

	// InvalidUIConfigError is returned when a UIConfig has invalid fields.
	InvalidUIConfigError struct {
		FieldErrors []error
	}

	// InvalidConfigError is returned when a Config has invalid fields.
	// It wraps ErrInvalidConfig for errors.Is() compatibility and collects
	// field-level validation errors from all sub-components.
	InvalidConfigError struct {
		FieldErrors []error
	}

	// Config holds the application configuration.
	Config struct {
		// Prefetch configures how remote sources are hashed
		Prefetch PrefetchConfig `json:"prefetch" mapstructure:"prefetch"`
		// Convert configures batch conversion
		Convert ConvertConfig `json:"convert" mapstructure:"convert"`
		// UI configures the user interface
		UI UIConfig `json:"ui" mapstructure:"ui"`
	}

	// PrefetchConfig configures the prefetch command.
	PrefetchConfig struct {
		// Command is a shell-style command line; the locator is appended as its last argument
		Command string `json:"command" mapstructure:"command"`
		// Attempts is the total number of tries per locator
		Attempts int `json:"attempts" mapstructure:"attempts"`
		// Timeout bounds a single try
		Timeout time.Duration `json:"timeout" mapstructure:"timeout"`
	}

	// ConvertConfig configures batch conversion.
	ConvertConfig struct {
		// Jobs is the number of entries decoded concurrently
		Jobs int `json:"jobs" mapstructure:"jobs"`
		// OnError selects abort or skip on a failing entry
		OnError ErrorPolicy `json:"on_error" mapstructure:"on_error"`
		// Format is the default output format
		Format OutputFormat `json:"format" mapstructure:"format"`
	}

	// UIConfig configures the user interface.
	UIConfig struct {
		// Verbose enables debug logging
		Verbose bool `json:"verbose" mapstructure:"verbose"`
		// Progress shows a progress bar while converting
		Progress bool `json:"progress" mapstructure:"progress"`
		// ColorScheme sets the color scheme
		ColorScheme ColorScheme `json:"color_scheme" mapstructure:"color_scheme"`
	}
)

// Error implements the error interface for InvalidOutputFormatError.
func (e *InvalidOutputFormatError) Error() string {
	return fmt.Sprintf("invalid output format %q (valid: nix, json, toml, yaml)", e.Value)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *InvalidOutputFormatError) Unwrap() error { return ErrInvalidOutputFormat }

// String returns the string representation of the OutputFormat.
func (f OutputFormat) String() string { return string(f) }

// IsValid returns whether the OutputFormat is one of the defined formats,
// and a list of validation errors if it is not.
func (f OutputFormat) IsValid() (bool, []error) {
	switch f {
	case OutputFormatNix, OutputFormatJSON, OutputFormatTOML, OutputFormatYAML:
		return true, nil
	default:
		return false, []error{&InvalidOutputFormatError{Value: f}}
	}
}

// Error implements the error interface for InvalidErrorPolicyError.
func (e *InvalidErrorPolicyError) Error() string {
	return fmt.Sprintf("invalid error policy %q (valid: abort, skip)", e.Value)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *InvalidErrorPolicyError) Unwrap() error { return ErrInvalidErrorPolicy }

// String returns the string representation of the ErrorPolicy.
func (p ErrorPolicy) String() string { return string(p) }

// IsValid returns whether the ErrorPolicy is one of the defined policies,
// and a list of validation errors if it is not.
func (p ErrorPolicy) IsValid() (bool, []error) {
	switch p {
	case ErrorPolicyAbort, ErrorPolicySkip:
		return true, nil
	default:
		return false, []error{&InvalidErrorPolicyError{Value: p}}
	}
}

// Error implements the error interface for InvalidColorSchemeError.
func (e *InvalidColorSchemeError) Error() string {
	return fmt.Sprintf("invalid color scheme %q (valid: auto, dark, light)", e.Value)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *InvalidColorSchemeError) Unwrap() error { return ErrInvalidColorScheme }

// String returns the string representation of the ColorScheme.
func (cs ColorScheme) String() string { return string(cs) }

// IsValid returns whether the ColorScheme is one of the defined color schemes,
// and a list of validation errors if it is not.
func (cs ColorScheme) IsValid() (bool, []error) {
	switch cs {
	case ColorSchemeAuto, ColorSchemeDark, ColorSchemeLight:
		return true, nil
	default:
		return false, []error{&InvalidColorSchemeError{Value: cs}}
	}
}

// IsValid returns whether the PrefetchConfig has valid fields.
func (c PrefetchConfig) IsValid() (bool, []error) {
	var errs []error
	if strings.TrimSpace(c.Command) == "" {
		errs = append(errs, errors.New("prefetch.command must not be empty"))
	}
	if c.Attempts < 1 {
		errs = append(errs, fmt.Errorf("prefetch.attempts must be at least 1, got %d", c.Attempts))
	}
	if c.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("prefetch.timeout must be positive, got %s", c.Timeout))
	}
	if len(errs) > 0 {
		return false, []error{&InvalidPrefetchConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidPrefetchConfigError.
func (e *InvalidPrefetchConfigError) Error() string {
	return fmt.Sprintf("invalid prefetch config: %s", joinErrors(e.FieldErrors))
}

// Unwrap returns ErrInvalidPrefetchConfig for errors.Is() compatibility.
func (e *InvalidPrefetchConfigError) Unwrap() error { return ErrInvalidPrefetchConfig }

// IsValid returns whether the ConvertConfig has valid fields.
// It delegates to OnError.IsValid() and Format.IsValid().
func (c ConvertConfig) IsValid() (bool, []error) {
	var errs []error
	if c.Jobs < 1 {
		errs = append(errs, fmt.Errorf("convert.jobs must be at least 1, got %d", c.Jobs))
	}
	if valid, fieldErrs := c.OnError.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.Format.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if len(errs) > 0 {
		return false, []error{&InvalidConvertConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidConvertConfigError.
func (e *InvalidConvertConfigError) Error() string {
	return fmt.Sprintf("invalid convert config: %s", joinErrors(e.FieldErrors))
}

// Unwrap returns ErrInvalidConvertConfig for errors.Is() compatibility.
func (e *InvalidConvertConfigError) Unwrap() error { return ErrInvalidConvertConfig }

// IsValid returns whether the UIConfig has valid fields.
// It delegates to ColorScheme.IsValid(); bool fields need no validation.
func (c UIConfig) IsValid() (bool, []error) {
	if valid, fieldErrs := c.ColorScheme.IsValid(); !valid {
		return false, []error{&InvalidUIConfigError{FieldErrors: fieldErrs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidUIConfigError.
func (e *InvalidUIConfigError) Error() string {
	return fmt.Sprintf("invalid UI config: %s", joinErrors(e.FieldErrors))
}

// Unwrap returns ErrInvalidUIConfig for errors.Is() compatibility.
func (e *InvalidUIConfigError) Unwrap() error { return ErrInvalidUIConfig }

// IsValid returns whether the Config has valid fields.
// It delegates to Prefetch.IsValid(), Convert.IsValid() and UI.IsValid().
func (c Config) IsValid() (bool, []error) {
	var errs []error
	if valid, fieldErrs := c.Prefetch.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.Convert.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.UI.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if len(errs) > 0 {
		return false, []error{&InvalidConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidConfigError.
func (e *InvalidConfigError) Error() string {
	return fmt.Sprintf("invalid config: %s", joinErrors(e.FieldErrors))
}

// Unwrap returns ErrInvalidConfig for errors.Is() compatibility.
func (e *InvalidConfigError) Unwrap() error { return ErrInvalidConfig }

func joinErrors(errs []error) string {
	msgs := make([]string, 0, len(errs))
	for _, err := range errs {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Prefetch: PrefetchConfig{
			Command:  DefaultPrefetchCommand,
			Attempts: DefaultPrefetchAttempts,
			Timeout:  DefaultPrefetchTimeout,
		},
		Convert: ConvertConfig{
			Jobs:    DefaultJobs,
			OnError: ErrorPolicyAbort,
			Format:  OutputFormatNix,
		},
		UI: UIConfig{
			Verbose:     false,
			Progress:    true,
			ColorScheme: ColorSchemeAuto,
		},
	}
}
