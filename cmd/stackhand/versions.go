// SPDX-License-Identifier: MPL-2.0

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"stackhand/internal/registry"
)

var (
	// refreshFlag bypasses the registry cache.
	refreshFlag bool

	versionsCmd = &cobra.Command{
		Use:   "versions <package>",
		Short: "Show installed versions of a global package",
		Args:  cobra.ExactArgs(1),
		RunE: runWithHelp(func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			if refreshFlag {
				if err := a.registry.Refresh(ctx); err != nil {
					return err
				}
			}

			versions, err := a.registry.Versions(ctx, args[0])
			if err != nil {
				return err
			}
			if len(versions) == 0 {
				return fmt.Errorf("package %q is not installed", args[0])
			}

			latest := registry.LatestVersion(versions)
			fmt.Println(TitleStyle.Render(args[0]))
			for _, v := range versions {
				if v == latest {
					fmt.Println("  " + SuccessStyle.Render(v+" (latest)"))
					latest = "" // flag the first occurrence only
					continue
				}
				fmt.Println("  " + HighlightStyle.Render(v))
			}
			return nil
		}),
	}

	installedCmd = &cobra.Command{
		Use:   "installed",
		Short: "List all globally installed packages",
		RunE: runWithHelp(func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			if refreshFlag {
				if err := a.registry.Refresh(ctx); err != nil {
					return err
				}
			}

			names, err := a.registry.Installed(ctx)
			if err != nil {
				return err
			}
			for _, name := range names {
				fmt.Println(HighlightStyle.Render(name))
			}
			return nil
		}),
	}
)

func init() {
	versionsCmd.Flags().BoolVar(&refreshFlag, "refresh", false, "re-query the installed-package database")
	installedCmd.Flags().BoolVar(&refreshFlag, "refresh", false, "re-query the installed-package database")
}
