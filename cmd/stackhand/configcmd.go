// SPDX-License-Identifier: MPL-2.0

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"stackhand/internal/config"
)

var (
	configCmd = &cobra.Command{
		Use:   "config",
		Short: "Inspect stackhand's configuration",
	}

	configShowCmd = &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		RunE: runWithHelp(func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			dir, err := config.ConfigDir()
			if err != nil {
				return err
			}

			fmt.Println(TitleStyle.Render("stackhand configuration") + SubtitleStyle.Render(" ("+dir+")"))
			fmt.Printf("  tool            = %s\n", HighlightStyle.Render(cfg.Tool))
			fmt.Printf("  pkg_tool        = %s\n", HighlightStyle.Render(cfg.PkgTool))
			fmt.Printf("  auto_target     = %v\n", cfg.AutoTarget)
			fmt.Printf("  edit_before_run = %v\n", cfg.EditBeforeRun)
			fmt.Printf("  auto_open.coverage = %v\n", cfg.AutoOpen.Coverage)
			fmt.Printf("  auto_open.haddock  = %v\n", cfg.AutoOpen.Haddock)
			return nil
		}),
	}
)

func init() {
	configCmd.AddCommand(configShowCmd)
}
