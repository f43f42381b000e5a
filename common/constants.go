// Package common holds the handful of ambient constants shared across the
// CLI and config layers; the pipeline core (lexer through codegen) never
// imports it.
package common

const (
	// SrcFileExtension is the conventional extension for source files
	// passed to the CLI.
	SrcFileExtension = ".mc"
	// ConfigFileName is the optional per-project settings file config
	// looks for.
	ConfigFileName = "minic.toml"
	// Version is the compiler's own version string, used in banners.
	Version = "0.1.0"
)
