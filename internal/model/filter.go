package model

// SubtaskFilter holds criteria for querying subtasks.
type SubtaskFilter struct {
	ProjectIDs []string `json:"project_ids,omitempty"`
	Status     []Status `json:"status,omitempty"`
	AssignedTo string   `json:"assigned_to,omitempty"`
	Unassigned bool     `json:"unassigned,omitempty"`
	Priority   *int     `json:"priority,omitempty"`
	Search     string   `json:"search,omitempty"` // substring match on name/description
	Sort       string   `json:"sort,omitempty"`   // e.g. "-priority_stars", "due_date"; prefix "-" = descending
	Limit      int      `json:"limit,omitempty"`
	Offset     int      `json:"offset,omitempty"`
}
