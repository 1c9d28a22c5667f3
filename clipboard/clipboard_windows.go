//go:build windows
// +build windows

package clipboard

import (
	"os/exec"
	"strings"
)

// copyPlatform uses clip.exe on Windows.
func copyPlatform(text string) error {
	cmd := exec.Command("cmd", "/c", "clip")
	cmd.Stdin = strings.NewReader(text)
	return cmd.Run()
}
