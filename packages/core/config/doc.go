// Package config handles configuration loading for wirecheck.
//
// It provides functionality for:
//   - Loading configuration from .wirecheck.config.json files
//   - Default configuration values
//
// The target host and port live in the config and are injected into the
// scenario runner; no package reads them from global state.
package config
