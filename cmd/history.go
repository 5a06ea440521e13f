package cmd

import (
	"encoding/json"
	"os"

	"github.com/hostplay/hostplay/color"
	"github.com/hostplay/hostplay/history"
	"github.com/hostplay/hostplay/icon"
	"github.com/hostplay/hostplay/style"
	"github.com/hostplay/hostplay/util"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(historyCmd)

	historyCmd.Flags().StringP("backend", "b", "", "Only show tracks played through this backend")
	lo.Must0(historyCmd.RegisterFlagCompletionFunc("backend", completionBackends))
	historyCmd.Flags().IntP("limit", "n", 20, "Maximum number of tracks to show, 0 for all")
	historyCmd.Flags().BoolP("json", "j", false, "Print the records as JSON")
	historyCmd.SetOut(os.Stdout)
}

// historyCmd shows the tracks played while serving.
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show tracks played while serving, most recent first",
	Run: func(cmd *cobra.Command, args []string) {
		var (
			name  = lo.Must(cmd.Flags().GetString("backend"))
			limit = lo.Must(cmd.Flags().GetInt("limit"))
		)

		tracks, err := history.Recent()
		handleErr(err)

		if name != "" {
			tracks = lo.Filter(tracks, func(t *history.SavedTrack, _ int) bool {
				return t.Backend == name
			})
		}

		if limit > 0 && len(tracks) > limit {
			tracks = tracks[:limit]
		}

		if lo.Must(cmd.Flags().GetBool("json")) {
			handleErr(json.NewEncoder(cmd.OutOrStdout()).Encode(tracks))
			return
		}

		for _, t := range tracks {
			cmd.Printf(
				"%s %s %s\n",
				icon.Get(icon.Play),
				style.Bold(t.String()),
				style.Faint(t.LastPlayed.Format("2006-01-02 15:04")),
			)
			cmd.Printf(
				"  %s played %s, %d to the end\n",
				style.Fg(color.Purple)(t.Backend),
				util.Quantify(t.Plays, "time", "times"),
				t.Completed,
			)
		}
	},
}
