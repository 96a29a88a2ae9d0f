// Package config provides configuration management for platdetect.
//
// Settings come, in increasing precedence, from built-in defaults, a YAML
// file, an optional .env file and PLATDETECT_* environment variables.
//
// # Configuration File
//
// The file is config.yaml in $PLATDETECT_CONFIG_DIR, the current directory
// or ~/.config/platdetect, first match wins:
//
//	dynamic_install: true
//	sdk_storage_url: https://example.blob.core.windows.net
//	platforms:
//	  python:
//	    default_version: "3.8"
//	    install_dir: /opt/python
//	  nodejs:
//	    supported_versions: ["12.16.1", "14.3.0"]
//
// # Environment
//
// Every key maps to PLATDETECT_ plus the key with dots replaced by
// underscores, e.g. PLATDETECT_PLATFORMS_NODEJS_DEFAULT_VERSION. Per-platform
// version settings also accept the short form
// PLATDETECT_PYTHON_SUPPORTED_VERSIONS=3.8.2,3.7.1.
//
// # Loading
//
//	config.Init()
//	cfg, err := config.Load("")
//	if err != nil {
//	    return err // matches errors.ErrConfiguration
//	}
//	settings := cfg.Platform(paths.PlatformPython)
//
// Load validates the result; [Validate] can also be called directly and
// returns one error per invalid field.
package config
