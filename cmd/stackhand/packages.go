// SPDX-License-Identifier: MPL-2.0

package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	packagesCmd = &cobra.Command{
		Use:   "packages",
		Short: "List the packages of the enclosing project",
		RunE: runWithHelp(func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			_, proj, err := a.preparedPackage()
			if err != nil {
				return err
			}

			kind := "simple"
			if proj.Compound {
				kind = "compound"
			}
			fmt.Println(TitleStyle.Render(proj.Name) + SubtitleStyle.Render(" ("+kind+" project at "+proj.Root+")"))
			for _, pkg := range proj.Packages {
				marker := "  "
				if pkg == proj.Current {
					marker = SuccessStyle.Render("* ")
				}
				name := pkg.Name
				if name == "" {
					name = SubtitleStyle.Render("(unnamed: " + pkg.ManifestPath + ")")
				}
				fmt.Printf("%s%s %s\n", marker, HighlightStyle.Render(name), SubtitleStyle.Render(pkg.Version))
			}
			return nil
		}),
	}

	targetsCmd = &cobra.Command{
		Use:   "targets",
		Short: "List the buildable targets of the current package",
		RunE: runWithHelp(func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			pkg, _, err := a.preparedPackage()
			if err != nil {
				return err
			}

			fmt.Println(TitleStyle.Render(pkg.Name) + SubtitleStyle.Render(" "+pkg.Version))
			if pkg.Homepage != "" {
				fmt.Println(SubtitleStyle.Render("  " + pkg.Homepage))
			}
			for _, t := range pkg.Targets {
				fmt.Println("  " + HighlightStyle.Render(t.String()))
			}
			return nil
		}),
	}
)
