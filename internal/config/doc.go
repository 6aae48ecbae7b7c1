// Package config loads the server and rule settings from ACADEMY_* environment
// variables and an optional config.yaml, and validates them.
package config
