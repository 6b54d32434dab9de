package tui

import (
	"fmt"
	"net/url"
	"os/exec"
	"runtime"
)

// OSOpenCmd allows mocking the open command.
var OSOpenCmd = func(target string) *exec.Cmd {
	var cmd string
	var args []string
	switch runtime.GOOS {
	case "linux":
		cmd = "xdg-open"
		args = []string{target}
	case "windows":
		cmd = "rundll32"
		args = []string{"url.dll,FileProtocolHandler", target}
	case "darwin":
		cmd = "open"
		args = []string{target}
	default:
		return nil
	}
	return exec.Command(cmd, args...) //nolint:gosec
}

// openBrowser opens a cover image URL. Catalog records may carry invalid
// URLs, so anything that is not absolute http(s) is rejected.
func openBrowser(raw string) error {
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid cover url %q", raw)
	}
	cmd := OSOpenCmd(u.String())
	if cmd == nil {
		return fmt.Errorf("unsupported platform")
	}
	return cmd.Start()
}
