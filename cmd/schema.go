package cmd

import (
	"encoding/json"
	"os"

	"github.com/hostplay/hostplay/protocol"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(schemaCmd)

	schemaCmd.Flags().BoolP("inbound", "i", false, "Schema of the commands a driver accepts")
	schemaCmd.Flags().BoolP("outbound", "o", false, "Schema of the events a driver emits")
	schemaCmd.MarkFlagsMutuallyExclusive("inbound", "outbound")
	schemaCmd.SetOut(os.Stdout)
}

// schemaCmd prints the JSON schema of the controller channel messages.
var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the JSON schema of controller channel messages",
	Run: func(cmd *cobra.Command, args []string) {
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")

		switch {
		case lo.Must(cmd.Flags().GetBool("inbound")):
			handleErr(encoder.Encode(protocol.InboundSchema()))
		case lo.Must(cmd.Flags().GetBool("outbound")):
			handleErr(encoder.Encode(protocol.OutboundSchema()))
		default:
			handleErr(encoder.Encode(map[string]any{
				"inbound":  protocol.InboundSchema(),
				"outbound": protocol.OutboundSchema(),
			}))
		}
	},
}
