package browser

import (
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/hostplay/hostplay/constant"
	"github.com/samber/lo"
)

// candidates are the Chrome executables looked up on PATH, in order.
var candidates = []string{
	"google-chrome",
	"google-chrome-stable",
	"chromium",
	"chromium-browser",
	"chrome",
	"headless-shell",
	"headless_shell",
}

func platformPaths() []string {
	switch runtime.GOOS {
	case constant.Darwin:
		return []string{
			"/Applications/Google Chrome.app/Contents/MacOS/Google Chrome",
			"/Applications/Chromium.app/Contents/MacOS/Chromium",
		}
	case constant.Windows:
		return lo.FilterMap([]string{"ProgramFiles", "ProgramFiles(x86)", "LocalAppData"}, func(env string, _ int) (string, bool) {
			base, ok := os.LookupEnv(env)
			return filepath.Join(base, "Google", "Chrome", "Application", "chrome.exe"), ok
		})
	default:
		return []string{"/usr/bin/google-chrome", "/snap/bin/chromium"}
	}
}

// FindExecPath locates the Chrome executable that would be launched.
// A configured path wins when it exists.
func FindExecPath(configured string) (string, bool) {
	if configured != "" {
		if _, err := os.Stat(configured); err == nil {
			return configured, true
		}

		return "", false
	}

	for _, name := range candidates {
		if path, err := exec.LookPath(name); err == nil {
			return path, true
		}
	}

	return lo.Find(platformPaths(), func(path string) bool {
		_, err := os.Stat(path)
		return err == nil
	})
}
