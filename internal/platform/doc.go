// Package platform defines the detector contract and runs detection passes
// over a source tree.
//
// Each supported runtime ecosystem (dotnet, php, python, nodejs) has a
// [Detector] in a subpackage. A detector looks for structural signals such
// as a manifest or lock file, and on a match resolves a concrete runtime
// version through a [VersionResolver].
//
// # Detection Order
//
// The [Orchestrator] tries detectors in a fixed order and stops at the first
// match. [NewOrchestratorFromRegistry] uses the order of paths.Platforms:
//
//  1. dotnet
//  2. php
//  3. python
//  4. nodejs
//
// Descriptors that name a single ecosystem come first; the nodejs legacy
// fallback on server.js or app.js is the weakest signal and runs last.
//
// # Results
//
// A detector reports one of three outcomes through [Result]:
//
//   - [StatusNoMatch]: the tree does not target the platform
//   - [StatusMatched]: the platform and its resolved version
//   - [StatusFailed]: the platform matched but its version could not be
//     resolved, either because no supported version satisfies the declared
//     constraint or because the version catalog failed to load
//
// A failed result is fatal for the whole pass. A pass in which every
// detector reports NoMatch is undetermined, which is not an error.
//
// # Version Hints
//
// [ResolveVersion] applies the common precedence: a version preset in the
// [DetectionContext], then the detector's hints in order, then the catalog
// default.
//
// # Thread Safety
//
// Registries, orchestrators and detectors are safe for concurrent use.
package platform
