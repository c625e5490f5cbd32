package main

import (
	"context"
	"fmt"

	"github.com/Mario960060/cosmichub/internal/client"
	"github.com/spf13/cobra"
)

var requestCmd = &cobra.Command{
	Use:   "request",
	Short: "Manage task requests",
}

var requestCreateCmd = &cobra.Command{
	Use:   "create <task-name>",
	Short: "File a new task request",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		project, _ := cmd.Flags().GetString("project")
		module, _ := cmd.Flags().GetString("module")

		req, err := hub.CreateRequest(context.Background(), &client.CreateRequestRequest{
			TaskName:    args[0],
			ProjectID:   project,
			ModuleName:  module,
			RequestedBy: actor,
		})
		if err != nil {
			fatalf("%v", err)
		}

		if jsonOutput {
			printJSON(req)
		} else {
			fmt.Printf("request %s created (%s)\n", req.ID, req.Status)
		}
		return nil
	},
}

var requestListCmd = &cobra.Command{
	Use:   "list",
	Short: "List task requests",
	RunE: func(cmd *cobra.Command, args []string) error {
		status, _ := cmd.Flags().GetString("status")

		requests, err := hub.ListRequests(context.Background(), status)
		if err != nil {
			fatalf("%v", err)
		}

		if jsonOutput {
			printJSON(requests)
		} else {
			printRequestsTable(requests)
		}
		return nil
	},
}

var requestApproveCmd = &cobra.Command{
	Use:   "approve <id>",
	Short: "Approve a pending task request",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		req, err := hub.ApproveRequest(context.Background(), args[0], actor)
		if err != nil {
			fatalf("%v", err)
		}
		if jsonOutput {
			printJSON(req)
		} else {
			fmt.Printf("request %s approved by %s\n", req.ID, req.ResolvedBy)
		}
		return nil
	},
}

var requestRejectCmd = &cobra.Command{
	Use:   "reject <id>",
	Short: "Reject a pending task request",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		req, err := hub.RejectRequest(context.Background(), args[0], actor)
		if err != nil {
			fatalf("%v", err)
		}
		if jsonOutput {
			printJSON(req)
		} else {
			fmt.Printf("request %s rejected by %s\n", req.ID, req.ResolvedBy)
		}
		return nil
	},
}

func init() {
	requestCreateCmd.Flags().StringP("project", "P", "", "project ID (required)")
	requestCreateCmd.Flags().StringP("module", "m", "", "module name")
	requestCreateCmd.MarkFlagRequired("project")

	requestListCmd.Flags().StringP("status", "s", "", "filter by status (defaults to pending)")

	requestCmd.AddCommand(requestCreateCmd)
	requestCmd.AddCommand(requestListCmd)
	requestCmd.AddCommand(requestApproveCmd)
	requestCmd.AddCommand(requestRejectCmd)
}
