// SPDX-License-Identifier: MPL-2.0

// Package cabal parses Haskell package manifests (.cabal files) into
// structured package records with ordered build targets.
package cabal
