package claude

import (
	"errors"
	"fmt"
)

// Kind classifies a ConfigError.
type Kind int

const (
	// KindPathUnresolved means no home directory could be determined.
	KindPathUnresolved Kind = iota + 1
	// KindIO covers directory creation and file write failures.
	KindIO
	// KindPrompt means the overwrite confirmation could not be read.
	KindPrompt
	// KindEncode means the merged document could not be serialized.
	KindEncode
)

// Sentinels for errors.Is. A *ConfigError matches the sentinel of its Kind.
var (
	ErrPathUnresolved = errors.New("could not determine Claude Code settings path")
	ErrIO             = errors.New("settings file i/o failed")
	ErrPrompt         = errors.New("overwrite confirmation failed")
	ErrEncode         = errors.New("settings encoding failed")
)

func (k Kind) sentinel() error {
	switch k {
	case KindPathUnresolved:
		return ErrPathUnresolved
	case KindIO:
		return ErrIO
	case KindPrompt:
		return ErrPrompt
	case KindEncode:
		return ErrEncode
	}
	return nil
}

// ConfigError is returned by Writer for every failure of a write operation.
// Read and parse failures during probing and loading never produce one.
type ConfigError struct {
	Kind Kind
	Op   string
	Path string
	Err  error
}

func (e *ConfigError) Error() string {
	msg := "settings error"
	if s := e.Kind.sentinel(); s != nil {
		msg = s.Error()
	}
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}
	if e.Path != "" {
		msg = fmt.Sprintf("%s (%s)", msg, e.Path)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ConfigError) Unwrap() error { return e.Err }

func (e *ConfigError) Is(target error) bool {
	return target != nil && target == e.Kind.sentinel()
}
