//go:build linux
// +build linux

package clipboard

import (
	"errors"
	"os"
	"os/exec"
	"strings"
)

// copyPlatform copies text via wl-copy on Wayland sessions. X11 setups
// are already handled by the system clipboard backend.
func copyPlatform(text string) error {
	if os.Getenv("WAYLAND_DISPLAY") == "" && os.Getenv("XDG_SESSION_TYPE") != "wayland" {
		return errors.New("wayland clipboard not available (no WAYLAND_DISPLAY and XDG_SESSION_TYPE!=wayland)")
	}

	if _, err := exec.LookPath("wl-copy"); err != nil {
		return errors.New("wl-copy not found in PATH (install wl-clipboard)")
	}

	cmd := exec.Command("wl-copy")
	cmd.Stdin = strings.NewReader(text)
	return cmd.Run()
}
