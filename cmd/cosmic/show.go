package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show details of a subtask",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id := args[0]

		st, err := hub.GetSubtask(context.Background(), id)
		if err != nil {
			fatalf("%v", err)
		}

		if jsonOutput {
			printJSON(st)
			return nil
		}

		printSubtaskTable(st)

		logs, hours, err := hub.GetWorkLogs(context.Background(), id)
		if err == nil && len(logs) > 0 {
			fmt.Println()
			fmt.Println("Work logs:")
			printWorkLogsTable(logs, hours)
		}

		deps, err := hub.GetDependencies(context.Background(), id)
		if err == nil && len(deps) > 0 {
			fmt.Println()
			fmt.Println("Depends on:")
			for _, d := range deps {
				state := "done"
				if d.IsOpen() {
					state = string(d.DependsOnStatus)
				}
				fmt.Printf("  %s  %s (%s)\n", d.DependsOnID, d.DependsOnName, state)
			}
		}
		return nil
	},
}
