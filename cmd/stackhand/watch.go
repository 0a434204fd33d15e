// SPDX-License-Identifier: MPL-2.0

package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"stackhand/internal/watch"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Re-scan the project whenever manifests or markers change",
	RunE: runWithHelp(func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		_, proj, err := a.preparedPackage()
		if err != nil {
			return err
		}
		fmt.Println(SubtitleStyle.Render("watching ") + HighlightStyle.Render(proj.Root))

		w, err := watch.New(watch.Config{
			Logger: a.logger,
			OnChange: func(ctx context.Context, changed []string) {
				cwd, err := os.Getwd()
				if err != nil {
					a.logger.Error("resolving working directory", "err", err)
					return
				}
				refreshed, err := a.session.Prepare(cwd)
				if err != nil {
					fmt.Println(ErrorStyle.Render("refresh failed: " + err.Error()))
					return
				}
				fmt.Printf("%s %d file(s) changed, %d package(s) loaded\n",
					SuccessStyle.Render("↻"), len(changed), len(refreshed.Packages))
			},
		}, proj)
		if err != nil {
			return err
		}

		if err := w.Run(cmd.Context()); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	}),
}
