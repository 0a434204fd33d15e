// SPDX-License-Identifier: MPL-2.0

package cabal

import (
	"bufio"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// Line classifiers for the manifest fields the engine cares about. All are
// case-insensitive and anchored at line start after optional blanks; stanza
// identifiers are the usual cabal package-name alphabet.
var (
	nameRe     = regexp.MustCompile(`(?i)^[ \t]*name:[ \t]*(\S+)`)
	versionRe  = regexp.MustCompile(`(?i)^[ \t]*version:[ \t]*(\S+)`)
	homepageRe = regexp.MustCompile(`(?i)^[ \t]*homepage:[ \t]*(\S+)`)
	locationRe = regexp.MustCompile(`(?i)^[ \t]*location:[ \t]*(\S+)`)
	libraryRe  = regexp.MustCompile(`(?i)^[ \t]*library[ \t]*$`)
	exeRe      = regexp.MustCompile(`(?i)^[ \t]*executable[ \t]+([A-Za-z0-9-]+)`)
	testRe     = regexp.MustCompile(`(?i)^[ \t]*test-suite[ \t]+([A-Za-z0-9-]+)`)
	benchRe    = regexp.MustCompile(`(?i)^[ \t]*benchmark[ \t]+([A-Za-z0-9-]+)`)
)

// manifestScan is the structured intermediate form produced by classifying
// every line of a manifest, before target synthesis.
type manifestScan struct {
	name       string
	version    string
	homepage   string
	location   string
	hasLibrary bool
	exes       []string
	tests      []string
	benchs     []string
}

// Parse reads the manifest at path and returns its package record. An
// unreadable file yields a ManifestError wrapping ErrManifestNotFound.
// A manifest missing its name or version field parses successfully with
// the corresponding field left empty.
func Parse(path string) (*Package, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, &ManifestError{Path: path, Err: err}
	}

	info, err := os.Stat(abs)
	if err != nil {
		return nil, &ManifestError{Path: abs, Err: err}
	}

	f, err := os.Open(abs)
	if err != nil {
		return nil, &ManifestError{Path: abs, Err: err}
	}
	defer f.Close()

	scan := manifestScan{}
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		classifyLine(scanner.Text(), &scan)
	}
	if err := scanner.Err(); err != nil {
		return nil, &ManifestError{Path: abs, Err: err}
	}

	return &Package{
		Name:            scan.name,
		Version:         scan.version,
		Homepage:        scan.homepage,
		Location:        scan.location,
		Targets:         synthesizeTargets(scan),
		Dir:             filepath.Dir(abs),
		ManifestPath:    abs,
		ManifestModTime: info.ModTime(),
	}, nil
}

// classifyLine matches one manifest line against the known patterns and
// records the result. First name/version match wins; stanza headers are
// collected in file order.
func classifyLine(line string, scan *manifestScan) {
	if m := nameRe.FindStringSubmatch(line); m != nil && scan.name == "" {
		scan.name = m[1]
		return
	}
	if m := versionRe.FindStringSubmatch(line); m != nil && scan.version == "" {
		scan.version = m[1]
		return
	}
	if m := homepageRe.FindStringSubmatch(line); m != nil && scan.homepage == "" {
		scan.homepage = m[1]
		return
	}
	if m := locationRe.FindStringSubmatch(line); m != nil && scan.location == "" {
		scan.location = m[1]
		return
	}
	if libraryRe.MatchString(line) {
		scan.hasLibrary = true
		return
	}
	if m := exeRe.FindStringSubmatch(line); m != nil {
		scan.exes = append(scan.exes, m[1])
		return
	}
	if m := testRe.FindStringSubmatch(line); m != nil {
		scan.tests = append(scan.tests, m[1])
		return
	}
	if m := benchRe.FindStringSubmatch(line); m != nil {
		scan.benchs = append(scan.benchs, m[1])
	}
}

// synthesizeTargets builds the ordered target list: one lib target if a
// library stanza exists, then executables, test-suites and benchmarks.
// The group order is fixed regardless of stanza order in the file.
func synthesizeTargets(scan manifestScan) []Target {
	var targets []Target
	if scan.hasLibrary {
		targets = append(targets, Target{Package: scan.name, Kind: KindLib})
	}
	for _, e := range scan.exes {
		targets = append(targets, Target{Package: scan.name, Kind: KindExe, Sub: e})
	}
	for _, ts := range scan.tests {
		targets = append(targets, Target{Package: scan.name, Kind: KindTest, Sub: ts})
	}
	for _, b := range scan.benchs {
		targets = append(targets, Target{Package: scan.name, Kind: KindBench, Sub: b})
	}
	return targets
}

// IsManifest reports whether the file name looks like a package manifest.
func IsManifest(name string) bool {
	return strings.HasSuffix(name, ManifestExt)
}
