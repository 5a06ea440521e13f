package cmd

import (
	"os"

	"github.com/hostplay/hostplay/backend/custom"
	"github.com/hostplay/hostplay/color"
	"github.com/hostplay/hostplay/icon"
	"github.com/hostplay/hostplay/style"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.SetOut(os.Stdout)
}

// runCmd loads a Lua backend script and reports what it defines.
var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Validate a local Lua backend script",
	Long: `Execute a Lua backend script in the embedded Lua 5.1 VM and print the backend it defines.
Useful while writing selectors for a new player.`,
	Args:    cobra.ExactArgs(1),
	Example: "  hostplay run ./radio.lua",
	Run: func(cmd *cobra.Command, args []string) {
		def, err := custom.Load(args[0])
		handleErr(err)

		cmd.Printf("%s %s %s\n", style.Fg(color.Green)(icon.Get(icon.Success)), style.Bold(def.Name), style.Fg(color.Purple)(string(def.Family)))
		cmd.Printf("  url       %s\n", def.URL)
		cmd.Printf("  progress  %s\n", def.Progress.Kind)
		cmd.Printf("  title     %s\n", def.Selectors.Title)
		cmd.Printf("  next      %s\n", def.Selectors.Next)
		cmd.Printf("  play      %s\n", def.Selectors.Play)
		cmd.Printf("  pause     %s\n", def.Selectors.Pause)
	},
}
