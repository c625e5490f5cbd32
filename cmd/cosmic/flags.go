package main

import (
	"context"

	"github.com/spf13/cobra"
)

var flagsCmd = &cobra.Command{
	Use:   "flags",
	Short: "Show the red-flag feed for a user",
	RunE: func(cmd *cobra.Command, args []string) error {
		user, _ := cmd.Flags().GetString("user")
		if user == "" {
			user = actor
		}

		flags, err := hub.GetRedFlags(context.Background(), user)
		if err != nil {
			fatalf("%v", err)
		}

		if jsonOutput {
			printJSON(flags)
		} else {
			printFlagsTable(flags)
		}
		return nil
	},
}

var riskCmd = &cobra.Command{
	Use:   "risk <id>",
	Short: "Show the deadline risk assessment for a subtask",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		risk, err := hub.GetRisk(context.Background(), args[0])
		if err != nil {
			fatalf("%v", err)
		}

		if jsonOutput {
			printJSON(risk)
		} else {
			printRiskTable(risk)
		}
		return nil
	},
}

func init() {
	flagsCmd.Flags().StringP("user", "u", "", "user to build the feed for (defaults to actor)")
}
