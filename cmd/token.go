package cmd

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"os"

	"github.com/AlecAivazis/survey/v2"
	"github.com/hostplay/hostplay/auth"
	"github.com/hostplay/hostplay/color"
	"github.com/hostplay/hostplay/icon"
	"github.com/hostplay/hostplay/style"
	"github.com/hostplay/hostplay/util"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(tokenCmd)
}

// tokenCmd manages the bearer token controllers present to the channel.
var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Manage the controller channel token kept in the system keyring",
	Long: `Manage the controller channel token kept in the system keyring.

The token is only required when server.auth is enabled.`,
}

func init() {
	tokenCmd.AddCommand(tokenSetCmd)
	tokenSetCmd.Flags().BoolP("generate", "g", false, "Generate a random token instead of asking for one")
}

var tokenSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Store a channel token",
	Run: func(cmd *cobra.Command, args []string) {
		var token string

		if lo.Must(cmd.Flags().GetBool("generate")) {
			buf := make([]byte, 24)
			_, err := rand.Read(buf)
			handleErr(err)
			token = hex.EncodeToString(buf)
		} else {
			if !util.IsTerminal() {
				handleErr(errors.New("not a terminal, use --generate"))
			}

			prompt := &survey.Password{Message: "Channel token:"}
			handleErr(survey.AskOne(prompt, &token, survey.WithValidator(survey.Required)))
		}

		handleErr(auth.SetToken(token))
		fmt.Printf("%s token stored\n", style.Fg(color.Green)(icon.Get(icon.Success)))
	},
}

func init() {
	tokenCmd.AddCommand(tokenShowCmd)
	tokenShowCmd.SetOut(os.Stdout)
}

var tokenShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the stored channel token",
	Run: func(cmd *cobra.Command, args []string) {
		token, err := auth.GetToken()
		handleErr(err)
		cmd.Println(token)
	},
}

func init() {
	tokenCmd.AddCommand(tokenDeleteCmd)
}

var tokenDeleteCmd = &cobra.Command{
	Use:     "delete",
	Short:   "Remove the stored channel token",
	Aliases: []string{"remove"},
	Run: func(cmd *cobra.Command, args []string) {
		handleErr(auth.DeleteToken())
		fmt.Printf("%s token deleted\n", style.Fg(color.Green)(icon.Get(icon.Success)))
	},
}
