// Package config provides centralized configuration and path management
// for the ETL pipeline. It handles loading configuration from multiple
// sources, validation, and a type-safe API for the values the stages need.
//
// # Configuration Sources
//
// Configuration is loaded from the following sources in order of
// precedence:
//
//	1. Environment variables (highest priority)
//	2. Optional YAML configuration file
//	3. Default values (lowest priority)
//
// # Environment Variables
//
// All environment variables follow the pattern REITETL_* for namespacing:
//
//	REITETL_LOGGING_LEVEL=debug
//	REITETL_LOGGING_OUTPUT=stdout
//	REITETL_CLEAN_RETURN_MAX=5.0
//	REITETL_MACRO_SERIES=FEDFUNDS,CPIAUCSL
//	REITETL_MACRO_ALLOW_SYNTHETIC=false
//
// # Path Management
//
// The package provides centralized path management through the Paths type,
// which handles all file system paths relative to the executable location
// (or an explicit base directory):
//
//	paths, err := config.GetPaths()
//	rawPanel := paths.RawREITCSV
//	seriesCSV := paths.GetSeriesCSVPath("FEDFUNDS")
//
// # Usage
//
// Load configuration at stage startup:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
package config
