package main

import (
	"context"
	"fmt"

	"github.com/Mario960060/cosmichub/internal/client"
	"github.com/spf13/cobra"
)

var depCmd = &cobra.Command{
	Use:   "dep",
	Short: "Manage subtask dependencies",
}

var depAddCmd = &cobra.Command{
	Use:   "add <id> <depends-on-id>",
	Short: "Mark a subtask as depending on another",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		dep, err := hub.AddDependency(context.Background(), &client.AddDependencyRequest{
			SubtaskID:   args[0],
			DependsOnID: args[1],
			CreatedBy:   actor,
		})
		if err != nil {
			fatalf("%v", err)
		}
		if jsonOutput {
			printJSON(dep)
		} else {
			fmt.Printf("%s now depends on %s\n", dep.SubtaskID, dep.DependsOnID)
		}
		return nil
	},
}

var depRemoveCmd = &cobra.Command{
	Use:   "remove <id> <depends-on-id>",
	Short: "Remove a dependency edge",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := hub.RemoveDependency(context.Background(), args[0], args[1]); err != nil {
			fatalf("%v", err)
		}
		fmt.Printf("%s no longer depends on %s\n", args[0], args[1])
		return nil
	},
}

var depListCmd = &cobra.Command{
	Use:   "list <id>",
	Short: "List what a subtask depends on",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		deps, err := hub.GetDependencies(context.Background(), args[0])
		if err != nil {
			fatalf("%v", err)
		}
		if jsonOutput {
			printJSON(deps)
			return nil
		}
		if len(deps) == 0 {
			fmt.Println("no dependencies")
			return nil
		}
		for _, d := range deps {
			state := "done"
			if d.IsOpen() {
				state = string(d.DependsOnStatus)
			}
			fmt.Printf("%s  %s (%s)\n", d.DependsOnID, d.DependsOnName, state)
		}
		return nil
	},
}

var blockersCmd = &cobra.Command{
	Use:   "blockers <id>",
	Short: "List unfinished subtasks blocking a subtask",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		blockers, err := hub.GetBlockers(context.Background(), args[0])
		if err != nil {
			fatalf("%v", err)
		}
		if jsonOutput {
			printJSON(blockers)
			return nil
		}
		if len(blockers) == 0 {
			fmt.Println("not blocked")
			return nil
		}
		printSubtaskListTable(blockers, len(blockers))
		return nil
	},
}

func init() {
	depCmd.AddCommand(depAddCmd)
	depCmd.AddCommand(depRemoveCmd)
	depCmd.AddCommand(depListCmd)
}
