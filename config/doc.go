// Package config handles application configuration loading and validation.
//
// Configuration is loaded from config.yml and validated using struct tags.
// API keys can be left out of the file and supplied via environment
// variables instead.
package config
