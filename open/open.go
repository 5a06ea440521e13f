// Package open hands files and directories to the desktop's default handler.
package open

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/hostplay/hostplay/constant"
	"github.com/hostplay/hostplay/log"
)

// Start opens input with app, or with the default handler when app is empty.
// It does not wait for the handler to exit.
func Start(input, app string) error {
	cmd, err := command(runtime.GOOS, input, app)
	if err != nil {
		return err
	}

	log.Debugf("open: %s", strings.Join(cmd.Args, " "))
	return cmd.Start()
}

func command(goos, input, app string) (*exec.Cmd, error) {
	switch goos {
	case constant.Windows:
		if app != "" {
			// cmd's start treats & as a separator
			return exec.Command("cmd", "/C", "start", "", app, strings.ReplaceAll(input, "&", "^&")), nil
		}
		rundll := filepath.Join(os.Getenv("SYSTEMROOT"), "System32", "rundll32.exe")
		return exec.Command(rundll, "url.dll,FileProtocolHandler", input), nil
	case constant.Darwin:
		if app != "" {
			return exec.Command("open", "-a", app, input), nil
		}
		return exec.Command("open", input), nil
	case constant.Linux, constant.Android:
		if app != "" {
			return exec.Command(app, input), nil
		}
		if goos == constant.Android {
			return exec.Command("termux-open", input), nil
		}
		return exec.Command("xdg-open", input), nil
	default:
		return nil, fmt.Errorf("unsupported OS: %s", goos)
	}
}
