package postgres

import (
	"database/sql"
	"encoding/json"
	"time"

	"github.com/Mario960060/cosmichub/internal/model"
)

// scannable is the interface satisfied by both *sql.Row and *sql.Rows.
type scannable interface {
	Scan(dest ...any) error
}

// scanSubtask scans a single row into a model.Subtask.
// The row must contain columns in the order defined by subtaskColumns.
func scanSubtask(row scannable) (*model.Subtask, error) {
	var st model.Subtask
	var (
		moduleID       sql.NullString
		description    sql.NullString
		estimatedHours sql.NullFloat64
		dueDate        sql.NullTime
		assignedTo     sql.NullString
		createdBy      sql.NullString
		projectName    sql.NullString
	)

	err := row.Scan(
		&st.ID,
		&st.ProjectID,
		&moduleID,
		&st.Name,
		&description,
		&st.Status,
		&estimatedHours,
		&dueDate,
		&assignedTo,
		&st.PriorityStars,
		&st.CreatedAt,
		&createdBy,
		&st.UpdatedAt,
		&projectName,
	)
	if err != nil {
		return nil, err
	}

	st.ModuleID = moduleID.String
	st.Description = description.String
	st.AssignedTo = assignedTo.String
	st.CreatedBy = createdBy.String
	st.ProjectName = projectName.String
	if estimatedHours.Valid {
		st.EstimatedHours = &estimatedHours.Float64
	}
	if dueDate.Valid {
		t := dueDate.Time
		st.DueDate = &t
	}
	return &st, nil
}

// scanSubtaskWithTotal scans a row of total_count + subtask columns.
func scanSubtaskWithTotal(rows *sql.Rows) (*model.Subtask, int, error) {
	var st model.Subtask
	var total int
	var (
		moduleID       sql.NullString
		description    sql.NullString
		estimatedHours sql.NullFloat64
		dueDate        sql.NullTime
		assignedTo     sql.NullString
		createdBy      sql.NullString
		projectName    sql.NullString
	)

	err := rows.Scan(
		&total,
		&st.ID,
		&st.ProjectID,
		&moduleID,
		&st.Name,
		&description,
		&st.Status,
		&estimatedHours,
		&dueDate,
		&assignedTo,
		&st.PriorityStars,
		&st.CreatedAt,
		&createdBy,
		&st.UpdatedAt,
		&projectName,
	)
	if err != nil {
		return nil, 0, err
	}

	st.ModuleID = moduleID.String
	st.Description = description.String
	st.AssignedTo = assignedTo.String
	st.CreatedBy = createdBy.String
	st.ProjectName = projectName.String
	if estimatedHours.Valid {
		st.EstimatedHours = &estimatedHours.Float64
	}
	if dueDate.Valid {
		t := dueDate.Time
		st.DueDate = &t
	}
	return &st, total, nil
}

func scanWorkLog(row scannable) (*model.WorkLog, error) {
	var wl model.WorkLog
	var note, loggedBy sql.NullString
	err := row.Scan(&wl.ID, &wl.SubtaskID, &wl.HoursSpent, &note, &loggedBy, &wl.CreatedAt)
	if err != nil {
		return nil, err
	}
	wl.Note = note.String
	wl.LoggedBy = loggedBy.String
	return &wl, nil
}

// scanTaskRequest scans a row in requestColumns order.
func scanTaskRequest(row scannable) (*model.TaskRequest, error) {
	var req model.TaskRequest
	var (
		projectName sql.NullString
		moduleName  sql.NullString
		requestedBy sql.NullString
		resolvedBy  sql.NullString
		resolvedAt  sql.NullTime
	)

	err := row.Scan(
		&req.ID,
		&req.TaskName,
		&req.ProjectID,
		&projectName,
		&moduleName,
		&requestedBy,
		&req.Status,
		&resolvedBy,
		&resolvedAt,
		&req.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	req.ProjectName = projectName.String
	req.ModuleName = moduleName.String
	req.RequestedBy = requestedBy.String
	req.ResolvedBy = resolvedBy.String
	if resolvedAt.Valid {
		t := resolvedAt.Time
		req.ResolvedAt = &t
	}
	return &req, nil
}

func scanMembers(rows *sql.Rows) ([]*model.Member, error) {
	var members []*model.Member
	for rows.Next() {
		var m model.Member
		if err := rows.Scan(&m.UserID, &m.ProjectID, &m.Role, &m.AddedAt); err != nil {
			return nil, err
		}
		members = append(members, &m)
	}
	return members, rows.Err()
}

func scanEvent(row scannable) (*model.Event, error) {
	var ev model.Event
	var subtaskID, actor sql.NullString
	var payload []byte
	err := row.Scan(&ev.ID, &ev.Topic, &subtaskID, &actor, &payload, &ev.CreatedAt)
	if err != nil {
		return nil, err
	}
	ev.SubtaskID = subtaskID.String
	ev.Actor = actor.String
	if len(payload) > 0 {
		ev.Payload = json.RawMessage(payload)
	}
	return &ev, nil
}

// nullTimePtr converts a *time.Time to sql.NullTime; nil is null.
func nullTimePtr(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

// nullFloatPtr converts a *float64 to sql.NullFloat64; nil is null.
func nullFloatPtr(f *float64) sql.NullFloat64 {
	if f == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *f, Valid: true}
}

// nullString converts a string to sql.NullString; empty string is null.
func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

// jsonbBytes converts json.RawMessage to a []byte suitable for JSONB columns.
func jsonbBytes(m json.RawMessage) []byte {
	if len(m) == 0 {
		return nil
	}
	return []byte(m)
}
