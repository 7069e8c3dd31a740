package config

import (
	"fmt"
)

// DecodeError is returned when a document cannot be turned into a config.
type DecodeError struct {
	Filename string
	Msg      string
	Line     int
}

func (err DecodeError) Error() string {
	if err.Line > 0 {
		return fmt.Sprintf("%s:%d: %s", err.Filename, err.Line, err.Msg)
	}

	return fmt.Sprintf("%s: %s", err.Filename, err.Msg)
}

// UnsupportedFormatError is returned by ReadFile for a file extension it does not know.
type UnsupportedFormatError struct {
	Path string
}

func (err UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported config format %q, expected .yaml, .yml, .json or .hcl, optionally compressed as .zst", err.Path)
}
