package automap

import (
	"fmt"
	"strings"
)

// InvalidArgumentError represents a malformed argument such as a nil type identity.
type InvalidArgumentError struct {
	Argument string
	Reason   string
}

func (e *InvalidArgumentError) Error() string {
	return fmt.Sprintf("invalid argument %s: %s", e.Argument, e.Reason)
}

// ValidationError represents a mapping rejected by a MappingValidator.
type ValidationError struct {
	From   string
	To     string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid mapping %s -> %s: %s", e.From, e.To, e.Reason)
}

// ContainerOperationError represents a failure reported by the underlying container.
type ContainerOperationError struct {
	Op   string
	Type string
	Err  error
}

func (e *ContainerOperationError) Error() string {
	if e.Type == "" {
		return fmt.Sprintf("container %s failed: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("container %s failed for type %s: %v", e.Op, e.Type, e.Err)
}

func (e *ContainerOperationError) Unwrap() error {
	return e.Err
}

// DuplicateMappingError represents an interface with several concrete candidates
// that was not configured for multimapping.
type DuplicateMappingError struct {
	Interface string
	Concretes []string
}

func (e *DuplicateMappingError) Error() string {
	return fmt.Sprintf("multiple concrete types found for %s without multimapping: %s",
		e.Interface, strings.Join(e.Concretes, ", "))
}

// ConfigError represents a configuration source that could not be read or decoded.
type ConfigError struct {
	Source string
	Err    error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("load configuration from %s: %v", e.Source, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}
