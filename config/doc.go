// Package config handles application configuration loading and validation.
//
// Configuration is loaded from config.yml, overridden from FLIGHTMON_*
// environment variables and validated using struct tags. The package supports
// multiple update feeds and allows feed selection by name.
package config
