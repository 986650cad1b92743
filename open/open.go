// Package open launches URLs with the system's default handler or a chosen application.
package open

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/mediathek-cli/mediathek/log"
)

// runtime.GOOS values with a known opener.
const (
	windows = "windows"
	macOS   = "darwin"
	linux   = "linux"
	android = "android"
)

// Start opens url with app, or with the default handler when app is empty, and
// returns without waiting for it to exit.
func Start(url, app string) error {
	cmd, ok := Command(url, app)
	if !ok {
		return fmt.Errorf("unsupported OS: %s", runtime.GOOS)
	}

	log.WithFields(log.Fields{"url": url, "app": app}).Info("opening")
	return cmd.Start()
}

// Command builds the process that opens url on the running platform.
func Command(url, app string) (*exec.Cmd, bool) {
	if app != "" {
		return commandWith(runtime.GOOS, url, app)
	}
	return command(runtime.GOOS, url)
}

func command(goos, url string) (*exec.Cmd, bool) {
	switch goos {
	case windows:
		rundll := filepath.Join(os.Getenv("SYSTEMROOT"), "System32", "rundll32.exe")
		return exec.Command(rundll, "url.dll,FileProtocolHandler", url), true
	case macOS:
		return exec.Command("open", url), true
	case linux:
		return exec.Command("xdg-open", url), true
	case android:
		return exec.Command("termux-open", url), true
	default:
		return nil, false
	}
}

func commandWith(goos, url, app string) (*exec.Cmd, bool) {
	switch goos {
	case windows:
		// start treats a bare & as a command separator.
		escaped := strings.ReplaceAll(url, "&", "^&")
		return exec.Command("cmd", "/C", "start", "", app, escaped), true
	case macOS:
		return exec.Command("open", "-a", app, url), true
	case linux:
		return exec.Command(app, url), true
	case android:
		return exec.Command("termux-open", "--choose", url), true
	default:
		return nil, false
	}
}
