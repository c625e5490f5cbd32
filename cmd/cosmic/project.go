package main

import (
	"context"
	"fmt"

	"github.com/Mario960060/cosmichub/internal/client"
	"github.com/spf13/cobra"
)

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Manage projects and membership",
}

var projectCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a new project",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		owner, _ := cmd.Flags().GetString("owner")
		if owner == "" {
			owner = actor
		}

		p, err := hub.CreateProject(context.Background(), &client.CreateProjectRequest{
			Name:    args[0],
			OwnerID: owner,
		})
		if err != nil {
			fatalf("%v", err)
		}

		if jsonOutput {
			printJSON(p)
		} else {
			fmt.Printf("project %s created (owner %s)\n", p.ID, p.OwnerID)
		}
		return nil
	},
}

var projectListCmd = &cobra.Command{
	Use:   "list",
	Short: "List projects",
	RunE: func(cmd *cobra.Command, args []string) error {
		projects, err := hub.ListProjects(context.Background())
		if err != nil {
			fatalf("%v", err)
		}

		if jsonOutput {
			printJSON(projects)
		} else {
			printProjectsTable(projects)
		}
		return nil
	},
}

var projectMembersCmd = &cobra.Command{
	Use:   "members <project-id>",
	Short: "List project members",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		members, err := hub.ListMembers(context.Background(), args[0])
		if err != nil {
			fatalf("%v", err)
		}

		if jsonOutput {
			printJSON(members)
		} else {
			printMembersTable(members)
		}
		return nil
	},
}

var projectAddMemberCmd = &cobra.Command{
	Use:   "add-member <project-id> <user-id>",
	Short: "Add a user to a project",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		role, _ := cmd.Flags().GetString("role")

		m, err := hub.AddMember(context.Background(), args[0], args[1], role)
		if err != nil {
			fatalf("%v", err)
		}

		if jsonOutput {
			printJSON(m)
		} else {
			fmt.Printf("%s added to %s as %s\n", m.UserID, m.ProjectID, m.Role)
		}
		return nil
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show workload statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		stats, err := hub.GetStats(context.Background())
		if err != nil {
			fatalf("%v", err)
		}

		if jsonOutput {
			printJSON(stats)
			return nil
		}
		fmt.Printf("Todo:             %d\n", stats.TotalTodo)
		fmt.Printf("In Progress:      %d\n", stats.TotalInProgress)
		fmt.Printf("Review:           %d\n", stats.TotalReview)
		fmt.Printf("Blocked:          %d\n", stats.TotalBlocked)
		fmt.Printf("Done:             %d\n", stats.TotalDone)
		fmt.Printf("Pending Requests: %d\n", stats.PendingRequests)
		return nil
	},
}

var eventsCmd = &cobra.Command{
	Use:   "events <subtask-id>",
	Short: "Show the event history of a subtask",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		evs, err := hub.GetEvents(context.Background(), args[0])
		if err != nil {
			fatalf("%v", err)
		}

		if jsonOutput {
			printJSON(evs)
		} else {
			printEventsTable(evs)
		}
		return nil
	},
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check server health",
	RunE: func(cmd *cobra.Command, args []string) error {
		status, err := hub.Health(context.Background())
		if err != nil {
			fatalf("%v", err)
		}
		fmt.Println(status)
		return nil
	},
}

func init() {
	projectCreateCmd.Flags().String("owner", "", "owner user ID (defaults to actor)")
	projectAddMemberCmd.Flags().String("role", "member", "role (owner or member)")

	projectCmd.AddCommand(projectCreateCmd)
	projectCmd.AddCommand(projectListCmd)
	projectCmd.AddCommand(projectMembersCmd)
	projectCmd.AddCommand(projectAddMemberCmd)
}
