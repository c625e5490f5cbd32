package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/Mario960060/cosmichub/internal/model"
	"github.com/Mario960060/cosmichub/internal/ui"
)

func printJSON(v any) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error marshaling JSON: %v\n", err)
		return
	}
	fmt.Println(string(data))
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}

func printSubtaskTable(st *model.Subtask) {
	fmt.Printf("ID:          %s\n", st.ID)
	fmt.Printf("Project:     %s\n", st.ProjectID)
	if st.ModuleID != "" {
		fmt.Printf("Module:      %s\n", st.ModuleID)
	}
	fmt.Printf("Name:        %s\n", st.Name)
	fmt.Printf("Status:      %s\n", st.Status)
	fmt.Printf("Priority:    %s\n", strings.Repeat("*", st.PriorityStars))
	if st.AssignedTo != "" {
		fmt.Printf("Assignee:    %s\n", st.AssignedTo)
	}
	if st.EstimatedHours != nil {
		fmt.Printf("Estimate:    %.1fh\n", *st.EstimatedHours)
	}
	if st.DueDate != nil {
		fmt.Printf("Due:         %s\n", st.DueDate.Format("2006-01-02"))
	}
	if st.Description != "" {
		fmt.Printf("Description: %s\n", st.Description)
	}
	fmt.Printf("Created By:  %s\n", st.CreatedBy)
	fmt.Printf("Created At:  %s\n", st.CreatedAt.Format("2006-01-02 15:04:05"))
	fmt.Printf("Updated At:  %s\n", st.UpdatedAt.Format("2006-01-02 15:04:05"))
}

func printSubtaskListTable(subtasks []*model.Subtask, total int) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSTATUS\tPRIORITY\tDUE\tNAME\tASSIGNEE")
	for _, st := range subtasks {
		name := st.Name
		if len(name) > 50 {
			name = name[:47] + "..."
		}
		due := ""
		if st.DueDate != nil {
			due = st.DueDate.Format("2006-01-02")
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			st.ID,
			st.Status,
			strings.Repeat("*", st.PriorityStars),
			due,
			name,
			st.AssignedTo,
		)
	}
	w.Flush()
	fmt.Printf("\n%d subtasks (%d total)\n", len(subtasks), total)
}

func printWorkLogsTable(logs []*model.WorkLog, hoursLogged float64) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "WHEN\tHOURS\tBY\tNOTE")
	for _, wl := range logs {
		fmt.Fprintf(w, "%s\t%.1f\t%s\t%s\n",
			wl.CreatedAt.Format("2006-01-02 15:04"),
			wl.HoursSpent,
			wl.LoggedBy,
			wl.Note,
		)
	}
	w.Flush()
	fmt.Printf("\n%.1f hours logged\n", hoursLogged)
}

func printFlagsTable(flags []*model.RedFlag) {
	if len(flags) == 0 {
		fmt.Println("no red flags")
		return
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SEVERITY\tTYPE\tTITLE\tPROJECT")
	for _, f := range flags {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			ui.RenderSeverity(f.Severity),
			f.Type,
			f.Title,
			f.ProjectName,
		)
	}
	w.Flush()
	fmt.Printf("\n%d flags\n", len(flags))
}

func printRiskTable(risk *model.DeadlineRisk) {
	fmt.Printf("Level:       %s\n", ui.RenderRiskLevel(risk.Level))
	if risk.Reason != "" {
		fmt.Printf("Reason:      %s\n", risk.Reason)
	}
	fmt.Printf("Logged:      %.1fh (%d%% of estimate)\n", risk.HoursLogged, risk.EffortPercent)
	if risk.HoursRemaining != nil {
		fmt.Printf("Remaining:   %.1fh\n", *risk.HoursRemaining)
	}
	if risk.DaysLeft != nil {
		fmt.Printf("Days Left:   %.1f\n", *risk.DaysLeft)
	}
	if risk.IsOverrun {
		fmt.Printf("Overrun:     yes\n")
	}
}

func printRequestsTable(requests []*model.TaskRequest) {
	if len(requests) == 0 {
		fmt.Println("no requests")
		return
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSTATUS\tTASK\tPROJECT\tREQUESTED BY")
	for _, r := range requests {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			r.ID, r.Status, r.TaskName, r.ProjectID, r.RequestedBy)
	}
	w.Flush()
}

func printProjectsTable(projects []*model.Project) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tOWNER\tCREATED")
	for _, p := range projects {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			p.ID, p.Name, p.OwnerID, p.CreatedAt.Format("2006-01-02"))
	}
	w.Flush()
}

func printMembersTable(members []*model.Member) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "USER\tROLE\tADDED")
	for _, m := range members {
		fmt.Fprintf(w, "%s\t%s\t%s\n", m.UserID, m.Role, m.AddedAt.Format("2006-01-02"))
	}
	w.Flush()
}

func printEventsTable(evs []*model.Event) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "WHEN\tTOPIC\tACTOR")
	for _, e := range evs {
		fmt.Fprintf(w, "%s\t%s\t%s\n",
			e.CreatedAt.Format(time.RFC3339), e.Topic, e.Actor)
	}
	w.Flush()
}
