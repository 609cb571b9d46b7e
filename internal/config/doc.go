// Package config loads, normalizes, and validates seriesclean configuration.
//
// Configuration lives in a TOML file (default ~/.config/seriesclean/config.toml,
// falling back to ./seriesclean.toml). Missing files are not an error: every
// field has a default, and Load expands "~" in path fields before validation.
// The embedded sample_config.toml backs `seriesclean config init`.
package config
