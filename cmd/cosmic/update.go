package main

import (
	"context"
	"fmt"
	"time"

	"github.com/Mario960060/cosmichub/internal/client"
	"github.com/spf13/cobra"
)

var updateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update fields of a subtask",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id := args[0]

		req := &client.UpdateSubtaskRequest{UpdatedBy: actor}

		if cmd.Flags().Changed("name") {
			v, _ := cmd.Flags().GetString("name")
			req.Name = &v
		}
		if cmd.Flags().Changed("description") {
			v, _ := cmd.Flags().GetString("description")
			req.Description = &v
		}
		if cmd.Flags().Changed("status") {
			v, _ := cmd.Flags().GetString("status")
			req.Status = &v
		}
		if cmd.Flags().Changed("assignee") {
			v, _ := cmd.Flags().GetString("assignee")
			req.AssignedTo = &v
		}
		if cmd.Flags().Changed("priority") {
			v, _ := cmd.Flags().GetInt("priority")
			req.PriorityStars = &v
		}
		if cmd.Flags().Changed("estimate") {
			v, _ := cmd.Flags().GetFloat64("estimate")
			req.EstimatedHours = &v
		}
		if cmd.Flags().Changed("due") {
			dueStr, _ := cmd.Flags().GetString("due")
			due, err := time.Parse("2006-01-02", dueStr)
			if err != nil {
				fatalf("invalid due date %q: expected YYYY-MM-DD", dueStr)
			}
			req.DueDate = &due
		}

		st, err := hub.UpdateSubtask(context.Background(), id, req)
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

var statusCmd = &cobra.Command{
	Use:   "status <id> <status>",
	Short: "Change the status of a subtask",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, status := args[0], args[1]

		req := &client.UpdateSubtaskRequest{Status: &status, UpdatedBy: actor}
		st, err := hub.UpdateSubtask(context.Background(), id, req)
		if err != nil {
			fatalf("%v", err)
		}

		if jsonOutput {
			printJSON(st)
		} else {
			fmt.Printf("%s -> %s\n", st.ID, st.Status)
		}
		return nil
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a subtask",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id := args[0]

		if err := hub.DeleteSubtask(context.Background(), id); err != nil {
			fatalf("%v", err)
		}
		fmt.Printf("deleted %s\n", id)
		return nil
	},
}

func init() {
	updateCmd.Flags().String("name", "", "new name")
	updateCmd.Flags().StringP("description", "d", "", "new description")
	updateCmd.Flags().StringP("status", "s", "", "new status")
	updateCmd.Flags().String("assignee", "", "new assignee (empty to unassign)")
	updateCmd.Flags().IntP("priority", "p", 0, "new priority stars (1-5)")
	updateCmd.Flags().Float64P("estimate", "e", 0, "new estimated hours")
	updateCmd.Flags().String("due", "", "new due date (YYYY-MM-DD)")
}
