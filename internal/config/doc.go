// Package config loads tessera's runtime configuration.
//
// Configuration comes from three sources, later ones winning:
//
//   - built-in defaults (Default)
//   - a TOML or YAML file, chosen by extension
//   - TESSERA_* environment variables
//
// A Watcher reloads the file when it changes and hands the new
// configuration to a callback. Invalid files are reported and ignored, so
// the running configuration always passes Validate.
package config
