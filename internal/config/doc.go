// Package config loads subtitle formatting and batch settings from TOML files
// and provides the defaults used by the CLI.
package config
