// Package catalog builds and caches the set of runtime versions a platform
// can be resolved to.
//
// A [Catalog] comes from one of three providers:
//
//   - [LocalProvider] scans an install root such as /opt/nodejs, where each
//     subdirectory named after a semantic version is an installed runtime.
//   - [RemoteProvider] reads the blob listing and default-version pointer of
//     an SDK storage container over HTTP.
//   - [StaticProvider] serves a list taken from configuration.
//
// [NewProvider] picks exactly one of them per platform from configuration.
// [Cache] wraps a provider so the catalog is built once per process, with
// concurrent cold loads collapsed into a single call, and [Versions] exposes
// default and constraint resolution on top of it.
package catalog
