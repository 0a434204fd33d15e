// SPDX-License-Identifier: MPL-2.0

package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"

	"stackhand/internal/config"
	"stackhand/internal/launch"
	"stackhand/internal/project"
	"stackhand/internal/registry"
	"stackhand/pkg/cabal"
)

// app bundles the engine pieces one CLI invocation needs. The CLI is
// single-threaded, which satisfies the engine's no-internal-locking
// contract around Prepare and the registry cache.
type app struct {
	cfg      *config.Config
	logger   *log.Logger
	session  *project.Session
	registry *registry.Registry
	runner   *launch.Runner
}

// newApp loads configuration and wires the engine.
func newApp() (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	logger := log.Default()
	return &app{
		cfg:      cfg,
		logger:   logger,
		session:  project.NewSession(logger),
		registry: registry.New(registry.ExecQuery(cfg.PkgTool), logger),
		runner:   launch.NewRunner(nil, logger),
	}, nil
}

// preparedPackage refreshes the project from the working directory and
// returns the package in scope, honoring the --package flag.
func (a *app) preparedPackage() (*cabal.Package, *project.Project, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, nil, fmt.Errorf("resolving working directory: %w", err)
	}

	proj, err := a.session.Prepare(cwd)
	if err != nil {
		return nil, nil, err
	}
	if pkgScope != "" {
		if err := a.session.SetCurrent(pkgScope); err != nil {
			return nil, nil, err
		}
	}
	if proj.Current == nil {
		return nil, nil, fmt.Errorf("project %s has no packages", proj.Name)
	}
	return proj.Current, proj, nil
}

// scanner builds the output scanner from the configured auto-open
// toggles.
func (a *app) scanner() *launch.Scanner {
	return launch.NewScanner(launch.AutoOpen{
		Coverage: a.cfg.AutoOpen.Coverage,
		Haddock:  a.cfg.AutoOpen.Haddock,
	}, systemOpener{}, a.logger)
}
