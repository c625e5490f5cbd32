package main

import (
	"context"

	"github.com/Mario960060/cosmichub/internal/client"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List subtasks",
	RunE: func(cmd *cobra.Command, args []string) error {
		projects, _ := cmd.Flags().GetStringSlice("project")
		status, _ := cmd.Flags().GetStringSlice("status")
		assignee, _ := cmd.Flags().GetString("assignee")
		unassigned, _ := cmd.Flags().GetBool("unassigned")
		search, _ := cmd.Flags().GetString("search")
		sort, _ := cmd.Flags().GetString("sort")
		limit, _ := cmd.Flags().GetInt("limit")
		offset, _ := cmd.Flags().GetInt("offset")

		req := &client.ListSubtasksRequest{
			ProjectIDs: projects,
			Status:     status,
			AssignedTo: assignee,
			Unassigned: unassigned,
			Search:     search,
			Sort:       sort,
			Limit:      limit,
			Offset:     offset,
		}
		if cmd.Flags().Changed("priority") {
			p, _ := cmd.Flags().GetInt("priority")
			req.Priority = &p
		}

		resp, err := hub.ListSubtasks(context.Background(), req)
		if err != nil {
			fatalf("%v", err)
		}

		if jsonOutput {
			printJSON(resp.Subtasks)
		} else {
			printSubtaskListTable(resp.Subtasks, resp.Total)
		}
		return nil
	},
}

func init() {
	listCmd.Flags().StringSliceP("project", "P", nil, "filter by project (repeatable)")
	listCmd.Flags().StringSliceP("status", "s", nil, "filter by status (repeatable)")
	listCmd.Flags().String("assignee", "", "filter by assignee")
	listCmd.Flags().Bool("unassigned", false, "only unassigned subtasks")
	listCmd.Flags().IntP("priority", "p", 0, "filter by priority stars")
	listCmd.Flags().String("search", "", "substring search on name and description")
	listCmd.Flags().String("sort", "", "sort order (due_date, priority, updated_at)")
	listCmd.Flags().Int("limit", 20, "maximum number of subtasks to return")
	listCmd.Flags().Int("offset", 0, "offset for pagination")
}
