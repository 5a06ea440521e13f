package cmd

import (
	"fmt"
	"os"
	"runtime"

	"github.com/charmbracelet/lipgloss"
	"github.com/hostplay/hostplay/browser"
	"github.com/hostplay/hostplay/color"
	"github.com/hostplay/hostplay/constant"
	"github.com/hostplay/hostplay/icon"
	"github.com/hostplay/hostplay/key"
	"github.com/hostplay/hostplay/style"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.AddCommand(checkCmd)
}

// checkCmd verifies a browser can be launched.
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check that a Chrome browser is available",
	Run: func(cmd *cobra.Command, args []string) {
		if remoteURL := viper.GetString(key.BrowserRemoteURL); remoteURL != "" {
			fmt.Printf("%s attaching to %s\n", style.Fg(color.Green)(icon.Get(icon.Success)), remoteURL)
			return
		}

		path, ok := browser.FindExecPath(viper.GetString(key.BrowserExecPath))
		if !ok {
			printMissingDependencyError("Chrome")
			os.Exit(1)
		}

		fmt.Printf("%s using %s\n", style.Fg(color.Green)(icon.Get(icon.Success)), path)
	},
}

func printMissingDependencyError(dep string) {
	var installCmd string
	switch runtime.GOOS {
	case constant.Darwin:
		installCmd = "brew install --cask google-chrome"
	case constant.Linux:
		installCmd = "sudo apt install chromium"
	case constant.Windows:
		installCmd = "winget install Google.Chrome"
	}

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(color.HiRed).
		Padding(1, 2).
		Margin(1, 0)

	title := style.New().Bold(true).Foreground(color.HiRed).Render(fmt.Sprintf("%s Missing dependency", icon.Get(icon.Fail)))
	body := fmt.Sprintf("%s was not found in PATH. Set %s to its executable.", dep, style.Fg(color.Purple)(key.BrowserExecPath))

	suggestion := ""
	if installCmd != "" {
		suggestion = fmt.Sprintf("\n\nTo install it, try running:\n  %s", style.New().Foreground(color.Orange).Bold(true).Render(installCmd))
	}

	fmt.Println(box.Render(
		lipgloss.JoinVertical(lipgloss.Left,
			title,
			"",
			body,
			suggestion,
		),
	))
}
