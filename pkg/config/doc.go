// Package config loads clseek configuration. Layers are merged in order:
// embedded defaults, the user TOML file, CLSEEK_* environment variables and
// finally command line overrides.
package config
