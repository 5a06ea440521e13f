package cmd

import (
	"context"
	"os"
	"os/signal"

	"github.com/hostplay/hostplay/channel"
	"github.com/hostplay/hostplay/key"
	"github.com/hostplay/hostplay/remote"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.AddCommand(remoteCmd)
}

// remoteCmd attaches an interactive controller to a served driver.
var remoteCmd = &cobra.Command{
	Use:   "remote",
	Short: "Control a served driver interactively",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		address := viper.GetString(key.ServerAddress)
		client, err := channel.Dial(ctx, address, channelToken())
		handleErr(err)
		defer client.Close()

		handleErr(remote.Run(ctx, client, address))
	},
}
