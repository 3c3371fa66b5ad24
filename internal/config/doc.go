// Package config builds the effective run configuration by merging
// defaults, an optional gatekeep.yaml file, environment variables
// (including a .env file in the working directory), and CLI flag
// overrides, in that order. The API credential is the only required
// setting.
package config
