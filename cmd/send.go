package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/hostplay/hostplay/auth"
	"github.com/hostplay/hostplay/channel"
	"github.com/hostplay/hostplay/color"
	"github.com/hostplay/hostplay/icon"
	"github.com/hostplay/hostplay/key"
	"github.com/hostplay/hostplay/protocol"
	"github.com/hostplay/hostplay/style"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.AddCommand(sendCmd)

	sendCmd.Flags().DurationP("timeout", "t", 30*time.Second, "How long to wait for the answer")
	sendCmd.Flags().BoolP("json", "j", false, "Print the answer as a wire message")
	sendCmd.SetOut(os.Stdout)
}

// sendCmd issues commands over one connection and prints the events answering them.
var sendCmd = &cobra.Command{
	Use:   "send COMMAND...",
	Short: "Send commands to a served driver and print their answers",
	Long: `Send commands to a served driver and print their answers.

The commands are issued in order over a single connection. Each connection
is a fresh session that is left when send returns, so BeginPlayback must
follow an Advance in the same invocation.

Advance and BeginPlayback wait for the event that answers them.
LeaveSession has no answer and continues once it is sent.
Sending stops at the first failure.`,
	Example:   "  hostplay send Advance\n  hostplay send Advance BeginPlayback",
	Args:      cobra.MinimumNArgs(1),
	ValidArgs: lo.Map(protocol.Commands, func(c protocol.Command, _ int) string { return c.String() }),
	Run: func(cmd *cobra.Command, args []string) {
		commands := make([]protocol.Command, len(args))
		for i, arg := range args {
			command, err := protocol.ParseCommand(arg)
			handleErr(err)
			commands[i] = command
		}
		handleErr(channel.CheckSequence(commands))

		ctx, cancel := context.WithTimeout(context.Background(), lo.Must(cmd.Flags().GetDuration("timeout")))
		defer cancel()

		client, err := channel.Dial(ctx, viper.GetString(key.ServerAddress), channelToken())
		handleErr(err)
		defer client.Close()

		success := style.Fg(color.Green)(icon.Get(icon.Success))
		for _, command := range commands {
			answer, err := client.Do(ctx, command)
			handleErr(err)

			event, ok := answer.Get()
			if !ok {
				cmd.Printf("%s left the session\n", success)
				continue
			}

			if lo.Must(cmd.Flags().GetBool("json")) {
				handleErr(json.NewEncoder(cmd.OutOrStdout()).Encode(protocol.ToOutbound(event)))
			} else if event.Kind != protocol.KindFailed {
				cmd.Printf("%s %s\n", success, event)
			}

			if event.Kind == protocol.KindFailed {
				handleErr(fmt.Errorf("%s: %s", event.Command.Status(), event.Reason))
			}
		}
	},
}

// channelToken returns the keyring token when the channel requires one.
func channelToken() string {
	if !viper.GetBool(key.ServerAuth) {
		return ""
	}

	token, err := auth.GetToken()
	handleErr(err)
	return token
}
