//go:build darwin
// +build darwin

package clipboard

import (
	"os/exec"
	"strings"
)

// copyPlatform uses pbcopy on macOS.
func copyPlatform(text string) error {
	cmd := exec.Command("pbcopy")
	cmd.Stdin = strings.NewReader(text)
	return cmd.Run()
}
