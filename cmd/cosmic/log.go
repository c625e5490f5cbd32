package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/Mario960060/cosmichub/internal/client"
	"github.com/spf13/cobra"
)

var logCmd = &cobra.Command{
	Use:   "log <id> [hours]",
	Short: "Log hours on a subtask, or list its work logs",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id := args[0]

		if len(args) == 1 {
			logs, hours, err := hub.GetWorkLogs(context.Background(), id)
			if err != nil {
				fatalf("%v", err)
			}
			if jsonOutput {
				printJSON(map[string]any{"work_logs": logs, "hours_logged": hours})
			} else {
				printWorkLogsTable(logs, hours)
			}
			return nil
		}

		hours, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			fatalf("invalid hours %q", args[1])
		}
		note, _ := cmd.Flags().GetString("note")

		wl, err := hub.AddWorkLog(context.Background(), id, &client.AddWorkLogRequest{
			HoursSpent: hours,
			Note:       note,
			LoggedBy:   actor,
		})
		if err != nil {
			fatalf("%v", err)
		}

		if jsonOutput {
			printJSON(wl)
		} else {
			fmt.Printf("logged %.1fh on %s (%s)\n", wl.HoursSpent, wl.SubtaskID, wl.ID)
		}
		return nil
	},
}

func init() {
	logCmd.Flags().StringP("note", "n", "", "note describing the work")
}
