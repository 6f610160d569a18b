// Package config loads process configuration for Cerberus from an optional
// YAML file and the environment. The resulting Config is injected at
// startup and read-only thereafter.
package config
