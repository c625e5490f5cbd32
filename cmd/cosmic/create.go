package main

import (
	"context"
	"time"

	"github.com/Mario960060/cosmichub/internal/client"
	"github.com/spf13/cobra"
)

var createCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a new subtask",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]

		project, _ := cmd.Flags().GetString("project")
		module, _ := cmd.Flags().GetString("module")
		description, _ := cmd.Flags().GetString("description")
		status, _ := cmd.Flags().GetString("status")
		assignee, _ := cmd.Flags().GetString("assignee")
		priority, _ := cmd.Flags().GetInt("priority")

		req := &client.CreateSubtaskRequest{
			ProjectID:     project,
			ModuleID:      module,
			Name:          name,
			Description:   description,
			Status:        status,
			AssignedTo:    assignee,
			PriorityStars: priority,
			CreatedBy:     actor,
		}

		if cmd.Flags().Changed("estimate") {
			est, _ := cmd.Flags().GetFloat64("estimate")
			req.EstimatedHours = &est
		}
		if cmd.Flags().Changed("due") {
			dueStr, _ := cmd.Flags().GetString("due")
			due, err := time.Parse("2006-01-02", dueStr)
			if err != nil {
				fatalf("invalid due date %q: expected YYYY-MM-DD", dueStr)
			}
			req.DueDate = &due
		}

		st, err := hub.CreateSubtask(context.Background(), req)
		if err != nil {
			fatalf("%v", err)
		}

		if jsonOutput {
			printJSON(st)
		} else {
			printSubtaskTable(st)
		}
		return nil
	},
}

func init() {
	createCmd.Flags().StringP("project", "P", "", "project ID (required)")
	createCmd.Flags().StringP("module", "m", "", "module ID")
	createCmd.Flags().StringP("description", "d", "", "subtask description")
	createCmd.Flags().StringP("status", "s", "", "initial status (defaults to todo)")
	createCmd.Flags().String("assignee", "", "assignee")
	createCmd.Flags().IntP("priority", "p", 3, "priority stars (1-5)")
	createCmd.Flags().Float64P("estimate", "e", 0, "estimated hours")
	createCmd.Flags().String("due", "", "due date (YYYY-MM-DD)")
	createCmd.MarkFlagRequired("project")
}
