// Package config loads the CLI's own optional preferences file. Nothing
// in the compilation core reads from it -- compile has no filesystem
// surface -- it only ever shapes how the CLI presents a
// CompilationResult it already has in hand.
package config

import (
	"io/ioutil"
	"os"

	"github.com/pelletier/go-toml"
)

// tomlSettings mirrors the on-disk shape of a settings file.
type tomlSettings struct {
	Settings *tomlSettingsBlock `toml:"settings"`
}

type tomlSettingsBlock struct {
	LogLevel string `toml:"log-level"`
	Emit     string `toml:"emit"`
	Color    *bool  `toml:"color"`
}

// Settings are the resolved CLI preferences, defaults already applied.
type Settings struct {
	// LogLevel is one of "all", "errors-only", or "silent".
	LogLevel string
	// Emit is one of "tokens", "ast", "ir", "optimized-ir", "asm", or
	// "llvm-ir" -- the artifact the CLI prints after a compile.
	Emit string
	// Color controls whether pterm styling is used at all.
	Color bool
}

// Default returns the settings the CLI uses when no config file exists.
func Default() Settings {
	return Settings{LogLevel: "all", Emit: "asm", Color: true}
}

// Load reads path (if it exists) and merges it over Default(). A missing
// file is not an error -- it simply yields the defaults.
func Load(path string) (Settings, error) {
	settings := Default()

	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return settings, nil
	} else if err != nil {
		return settings, err
	}
	defer f.Close()

	buf, err := ioutil.ReadAll(f)
	if err != nil {
		return settings, err
	}

	var ts tomlSettings
	if err := toml.Unmarshal(buf, &ts); err != nil {
		return settings, err
	}
	if ts.Settings == nil {
		return settings, nil
	}

	if ts.Settings.LogLevel != "" {
		settings.LogLevel = ts.Settings.LogLevel
	}
	if ts.Settings.Emit != "" {
		settings.Emit = ts.Settings.Emit
	}
	if ts.Settings.Color != nil {
		settings.Color = *ts.Settings.Color
	}

	return settings, nil
}
