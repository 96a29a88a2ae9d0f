package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

// AppName names the application's config and cache directories.
const AppName = "platdetect"

// Platform identifiers for supported runtime ecosystems.
const (
	PlatformDotNet = "dotnet"
	PlatformPHP    = "php"
	PlatformPython = "python"
	PlatformNodeJS = "nodejs"
)

// platformInstallDirs maps platforms to the root holding one subdirectory
// per installed runtime version.
var platformInstallDirs = map[string]string{
	PlatformDotNet: "/opt/dotnet",
	PlatformPHP:    "/opt/php",
	PlatformPython: "/opt/python",
	PlatformNodeJS: "/opt/nodejs",
}

// platformDefaultVersions are used when neither configuration nor a remote
// pointer names a default.
var platformDefaultVersions = map[string]string{
	PlatformDotNet: "3.1.2",
	PlatformPHP:    "7.3.15",
	PlatformPython: "3.7.1",
	PlatformNodeJS: "12.16.1",
}

// DefaultDirPerm is the default permission for newly created directories (private).
const DefaultDirPerm = 0o700

// EnsureDir creates the directory and any necessary parents with specified permissions.
// If perm is 0, DefaultDirPerm (0700) is used.
func EnsureDir(path string, perm os.FileMode) error {
	if perm == 0 {
		perm = DefaultDirPerm
	}
	return os.MkdirAll(path, perm)
}

// ConfigHome returns the XDG config home directory.
// On Linux: ~/.config
// On macOS: ~/Library/Application Support
// On Windows: %LOCALAPPDATA%
func ConfigHome() string {
	return xdg.ConfigHome
}

// CacheHome returns the XDG cache home directory.
// On Linux: ~/.cache
// On macOS: ~/Library/Caches
// On Windows: %LOCALAPPDATA%\cache
func CacheHome() string {
	return xdg.CacheHome
}

// ConfigDir returns <ConfigHome>/platdetect.
func ConfigDir() string {
	return filepath.Join(ConfigHome(), AppName)
}

// MetricsFile returns the default textfile collector output,
// <CacheHome>/platdetect/platdetect.prom.
func MetricsFile() string {
	return filepath.Join(CacheHome(), AppName, AppName+".prom")
}

// ValidPlatform returns true if the platform name is recognized.
func ValidPlatform(platform string) bool {
	_, ok := platformInstallDirs[platform]
	return ok
}

// Platforms returns all supported platform identifiers in detection order:
// the most specific project descriptor first and the weakest heuristic last.
func Platforms() []string {
	return []string{
		PlatformDotNet,
		PlatformPHP,
		PlatformPython,
		PlatformNodeJS,
	}
}

// InstallDir returns the default install root for a platform.
// Returns an empty string for unknown platforms.
func InstallDir(platform string) string {
	return platformInstallDirs[platform]
}

// DefaultVersion returns the built-in default version for a platform.
// Returns an empty string for unknown platforms.
func DefaultVersion(platform string) string {
	return platformDefaultVersions[platform]
}
