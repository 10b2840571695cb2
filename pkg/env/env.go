// Package env keeps names of environment variables with special significance to
// the simple command.
package env

// Environment variables with special significance to the simple command.
//
// Note that some of these env vars may be significant only in special
// circumstances, such as when running unit tests.
const (
	// Path of the configuration file used when -config is not given.
	SIMPLE_CONFIG = "SIMPLE_CONFIG"
	// Scale of timeouts in tests.
	SIMPLE_TEST_TIME_SCALE = "SIMPLE_TEST_TIME_SCALE"
	// When set to a non-empty value, errors are never styled unless
	// -color always is given. See https://no-color.org.
	NO_COLOR = "NO_COLOR"
)
