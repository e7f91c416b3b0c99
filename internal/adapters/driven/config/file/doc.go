// Package file loads typed application configuration from a TOML file,
// applying environment variable overrides for secrets.
package file
