package config

import (
	"io"
	"time"
)

// Config defines the typed lookups the service reads its settings through.
//
// Missing keys resolve to the zero value of the requested type.
type Config interface {
	io.Closer

	// GetBool returns the value for key as a bool.
	GetBool(key string) bool

	// GetInt returns the value for key as an int.
	GetInt(key string) int

	// GetFloat64 returns the value for key as a float64.
	GetFloat64(key string) float64

	// GetString returns the value for key as a string.
	GetString(key string) string

	// GetSecond interprets the integer value for key as a number of seconds.
	GetSecond(key string) time.Duration

	// GetArray returns the value for key split on commas.
	// Configuration value is stored with format <element1>,<element2>,...
	GetArray(key string) []string
}
