// Package config provides configuration management for the material
// manager.
//
// It utilizes Viper for loading configuration from an optional
// config.yaml, a .env overlay, and environment variables, in rising
// precedence.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application
// settings, divided into subsections:
//   - Log: logging level, format, optional rotating file sink
//   - Convert: default conversion options; CLI flags may override
//     individual fields per invocation
//   - Batch: worker bound for batch runs
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	opts := cfg.Convert.Options()
package config
