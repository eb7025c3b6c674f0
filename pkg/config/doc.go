// Package config loads ordena configuration.
//
// Configuration is layered with koanf, later layers winning:
//
//  1. embedded defaults (embedded/defaults.toml)
//  2. the user config file: $XDG_CONFIG_HOME/ordena/config.toml (or
//     config.yaml), or an explicit file passed with --config
//  3. ORDENA_* environment variables, e.g. ORDENA_REPORTS_DIR or
//     ORDENA_COLLISION_MAX_ATTEMPTS
//
// Arrays are replaced rather than merged, so a user file declaring
// [[categories]] replaces the default taxonomy entirely.
package config
