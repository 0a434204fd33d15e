// SPDX-License-Identifier: MPL-2.0

// Package project locates the enclosing build-tool project on disk and
// caches its package records.
//
// A project root is the nearest ancestor directory carrying a recognized
// marker file. Simple projects hold exactly one manifest at the root;
// compound projects carry a dedicated marker and may hold several
// manifests anywhere below the root (nested unrelated projects are
// pruned). The Session keeps parsed records consistent with on-disk
// changes through per-manifest modification-time tracking: an unchanged
// manifest is never reparsed, a changed one is never skipped.
package project
