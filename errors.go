package replacer

import (
	"errors"
	"fmt"
	"reflect"
)

// Sentinel errors for programmatic error handling.
// Use errors.Is() to check for these error types.
var (
	// ErrCycle indicates the value graph references itself on the current path.
	ErrCycle = errors.New("cyclic value")

	// ErrDepth indicates the value graph is nested deeper than the configured limit.
	ErrDepth = errors.New("maximum depth exceeded")

	// ErrUnsupportedType indicates a value the encoder cannot represent.
	ErrUnsupportedType = errors.New("unsupported type")

	// ErrRootOmitted indicates the replacer omitted the root value itself.
	ErrRootOmitted = errors.New("root value omitted")

	// ErrMarshal indicates the codec failed to marshal output data.
	ErrMarshal = errors.New("marshal failed")

	// ErrUnmarshal indicates the codec failed to unmarshal input data.
	ErrUnmarshal = errors.New("unmarshal failed")

	// ErrInvalidConfig indicates a configuration value is not recognised.
	ErrInvalidConfig = errors.New("invalid config")

	// ErrUnknownCodec indicates no codec is registered under a name.
	ErrUnknownCodec = errors.New("unknown codec")
)

// CycleError reports the key path at which a cycle was detected.
type CycleError struct {
	Path string // Dotted key path of the repeated value
	Type reflect.Type
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("%s: %s at %q", ErrCycle.Error(), e.Type, e.Path)
}

func (e *CycleError) Unwrap() error {
	return ErrCycle
}

// UnsupportedTypeError reports a value whose type has no textual form.
type UnsupportedTypeError struct {
	Path string
	Type reflect.Type
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("%s %s at %q", ErrUnsupportedType.Error(), e.Type, e.Path)
}

func (e *UnsupportedTypeError) Unwrap() error {
	return ErrUnsupportedType
}

// CodecError represents a marshal/unmarshal error.
type CodecError struct {
	Err         error // Underlying sentinel error (ErrMarshal, ErrUnmarshal)
	ContentType string
	Cause       error // Original error from the codec
}

func (e *CodecError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s (%s): %v", e.Err.Error(), e.ContentType, e.Cause)
	}
	return fmt.Sprintf("%s (%s)", e.Err.Error(), e.ContentType)
}

// Unwrap exposes both the sentinel and the codec's own error, so callers can
// match either with errors.Is or errors.As.
func (e *CodecError) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Err}
	}
	return []error{e.Err, e.Cause}
}

// ConfigError represents a configuration problem for a single setting.
type ConfigError struct {
	Setting string // Setting that failed validation (exclude, targets, ...)
	Value   string // Offending value
}

func (e *ConfigError) Error() string {
	if e.Value != "" {
		return fmt.Sprintf("%s: %s %q", ErrInvalidConfig.Error(), e.Setting, e.Value)
	}
	return fmt.Sprintf("%s: %s", ErrInvalidConfig.Error(), e.Setting)
}

func (e *ConfigError) Unwrap() error {
	return ErrInvalidConfig
}

// newCodecError creates a CodecError for marshal/unmarshal failures.
func newCodecError(sentinel error, contentType string, cause error) error {
	return &CodecError{
		Err:         sentinel,
		ContentType: contentType,
		Cause:       cause,
	}
}

// newConfigError creates a ConfigError for a rejected setting.
func newConfigError(setting, value string) error {
	return &ConfigError{
		Setting: setting,
		Value:   value,
	}
}
