// Package config loads and validates the application configuration from
// environment variables and optional config files.
package config
