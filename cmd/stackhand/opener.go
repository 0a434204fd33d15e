// SPDX-License-Identifier: MPL-2.0

package main

import (
	"fmt"
	"os/exec"
	"runtime"

	"stackhand/internal/launch"
)

// systemOpener hands artifact locations to the OS default opener.
type systemOpener struct{}

var _ launch.Opener = systemOpener{}

func (systemOpener) Open(location string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", location)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", location)
	default:
		cmd = exec.Command("xdg-open", location)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("opening %s: %w", location, err)
	}
	return nil
}
