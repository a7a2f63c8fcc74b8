// Package config loads dashboard settings.
//
// Sources are layered, later ones winning:
//
//  1. built-in defaults (Default)
//  2. a TOML or YAML file, if present
//  3. PATRIOT_* environment variables (PATRIOT_API_BASE, PATRIOT_REQUEST_TIMEOUT, ...)
//
// Example config.toml:
//
//	api_base = "127.0.0.1:8080"
//	default_season = "2025"
//	request_timeout = "5s"
//	refresh_interval = "30s"
//	metrics_addr = "127.0.0.1:9464"
//
// A missing file falls back to defaults. A malformed file fails with a
// "parse config" error; unusable values wrap ErrInvalidConfig.
package config
