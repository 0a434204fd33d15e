// SPDX-License-Identifier: MPL-2.0

// Package launch spawns build tool processes and inspects their output.
//
// Each run is fire-and-forget: the process starts with its output routed
// to a named channel buffer and completion is delivered through a finish
// callback. The engine never queues or serializes runs; that is the
// caller's job. Finished output can be scanned for artifact locations
// (coverage reports, haddock indexes) which are resolved and handed to an
// injected opener.
package launch
