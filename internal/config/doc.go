// Package config loads the settings of the bench command from an optional
// config file and POOLCACHE_* environment variables.
package config
