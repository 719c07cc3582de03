// Package config loads, normalizes, and validates rtvk configuration data.
//
// Credentials come from the environment (optionally seeded from a .env file
// in the working directory); everything else has repository defaults that an
// optional rtvk.toml file may override. The Config type centralizes every
// knob the CLI needs, so queue paths, the ffmpeg binary, and API credentials
// are discovered in one pass at process start and passed by reference into
// the components that need them.
//
// Always obtain settings through this package so downstream code receives
// expanded paths, canonical log formats, and clear validation errors.
package config
