// Package paths provides well-known locations and platform identifiers.
//
// It wraps github.com/adrg/xdg for the configuration and cache directories
// and records, per runtime platform, where installed versions live and which
// version is the built-in default:
//
//	| Platform | Install root | Default |
//	|----------|--------------|---------|
//	| dotnet   | /opt/dotnet  | 3.1.2   |
//	| php      | /opt/php     | 7.3.15  |
//	| python   | /opt/python  | 3.7.1   |
//	| nodejs   | /opt/nodejs  | 12.16.1 |
//
// [Platforms] returns the names in detection order. Functions taking a
// platform return empty strings for unknown names; check with
// [ValidPlatform] first.
package paths
