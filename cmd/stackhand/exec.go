// SPDX-License-Identifier: MPL-2.0

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"stackhand/internal/command"
	"stackhand/internal/launch"
	"stackhand/internal/target"
)

var (
	// editFlag routes the assembled command through the editable
	// prompt before it runs.
	editFlag bool
	// autoFlag skips the target menu and acts on the whole package.
	autoFlag bool
	// fragmentFlag narrows the target menu by substring.
	fragmentFlag string

	execCmd = &cobra.Command{
		Use:   "exec <operation> [-- extra args...]",
		Short: "Run an arbitrary build tool operation against a chosen target",
		Args:  cobra.MinimumNArgs(1),
		RunE: runWithHelp(func(cmd *cobra.Command, args []string) error {
			return runOperation(args[0], args[1:])
		}),
	}

	buildCmd = &cobra.Command{
		Use:   "build [-- extra args...]",
		Short: "Build a target of the current package",
		RunE: runWithHelp(func(cmd *cobra.Command, args []string) error {
			return runOperation("build", args)
		}),
	}

	testCmd = &cobra.Command{
		Use:   "test [-- extra args...]",
		Short: "Run a test target of the current package",
		RunE: runWithHelp(func(cmd *cobra.Command, args []string) error {
			return runOperation("test", args)
		}),
	}

	benchCmd = &cobra.Command{
		Use:   "bench [-- extra args...]",
		Short: "Run a benchmark target of the current package",
		RunE: runWithHelp(func(cmd *cobra.Command, args []string) error {
			return runOperation("bench", args)
		}),
	}

	haddockCmd = &cobra.Command{
		Use:   "haddock [-- extra args...]",
		Short: "Generate documentation for the current package",
		RunE: runWithHelp(func(cmd *cobra.Command, args []string) error {
			return runOperation("haddock", args)
		}),
	}
)

func init() {
	for _, c := range []*cobra.Command{execCmd, buildCmd, testCmd, benchCmd, haddockCmd} {
		c.Flags().BoolVar(&editFlag, "edit", false, "edit the assembled command line before running it")
		c.Flags().BoolVar(&autoFlag, "auto", false, "act on the whole package without a target menu")
		c.Flags().StringVar(&fragmentFlag, "fragment", "", "narrow the target menu to targets containing this substring")
	}
}

// runOperation is the end-to-end flow: prepare the project, resolve the
// target, assemble the command, optionally let the user edit it, launch
// the process and scan its output.
func runOperation(operation string, extra []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}

	toolPath, err := launch.CheckTool(a.cfg.Tool)
	if err != nil {
		return err
	}

	pkg, proj, err := a.preparedPackage()
	if err != nil {
		return err
	}

	prompter := newTerminalPrompter()
	auto := autoFlag || a.cfg.AutoTarget
	tgt, err := target.Resolve(pkg, fragmentFlag, auto, prompter)
	if err != nil {
		return err
	}

	// Compound projects run from the root so the tool sees the whole
	// package set; simple ones run from the package directory.
	dir := pkg.Dir
	if proj.Compound {
		dir = proj.Root
	}

	args := []*string{optionalArg(tgt)}
	for _, e := range extra {
		args = append(args, command.Arg(e))
	}
	cmd := command.Build(toolPath, operation, args, dir, command.LogKey(pkg.Name))

	if editFlag || a.cfg.EditBeforeRun {
		if err := cmd.EditWith(prompter); err != nil {
			return err
		}
	}

	fmt.Println(SubtitleStyle.Render("running ") + HighlightStyle.Render(displayLine(cmd)))

	done := make(chan launch.Result, 1)
	if err := a.runner.Start(rootCmd.Context(), cmd, func(res launch.Result) { done <- res }); err != nil {
		return err
	}
	res := <-done

	output := a.runner.Buffers().Contents(cmd.LogKey)
	fmt.Print(output)

	artifacts := a.scanner().Process(output, pkg.Dir)
	for _, art := range artifacts {
		fmt.Println(SubtitleStyle.Render(string(art.Kind)+": ") + HighlightStyle.Render(art.Path))
	}

	if res.Err != nil {
		return fmt.Errorf("%s %s: %w", a.cfg.Tool, operation, res.Err)
	}
	if res.ExitCode != 0 {
		return fmt.Errorf("%s %s exited with status %d", a.cfg.Tool, operation, res.ExitCode)
	}
	fmt.Println(SuccessStyle.Render("✓ " + operation + " finished"))
	return nil
}

// optionalArg drops empty targets (a package with an empty name resolves
// to an empty selection in auto mode) from the argument vector.
func optionalArg(s string) *string {
	if s == "" {
		return nil
	}
	return command.Arg(s)
}

// displayLine shows what will actually run: the edited text verbatim, or
// the quoted rendering of the structured command.
func displayLine(cmd *command.Command) string {
	if cmd.Edited != "" {
		return cmd.Edited
	}
	return cmd.String()
}
