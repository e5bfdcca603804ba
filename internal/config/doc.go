// Package config defines the application configuration structure and its
// loading. Values come from environment variables (KANA_ prefix) layered
// over an optional config.yaml, and are validated before use.
package config
