package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/Mario960060/cosmichub/internal/model"
)

// subtaskColumns is the column list used for SELECT statements on the
// subtasks table, including the project name join.
const subtaskColumns = `s.id, s.project_id, s.module_id, s.name, s.description,
	s.status, s.estimated_hours, s.due_date, s.assigned_to, s.priority_stars,
	s.created_at, s.created_by, s.updated_at, p.name AS project_name`

// executor is the interface satisfied by both *sql.DB and *sql.Tx.
type executor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func queryCreateSubtask(ctx context.Context, db executor, st *model.Subtask) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO subtasks (
			id, project_id, module_id, name, description,
			status, estimated_hours, due_date, assigned_to, priority_stars,
			created_at, created_by, updated_at
		) VALUES (
			$1, $2, $3, $4, $5,
			$6, $7, $8, $9, $10,
			$11, $12, $13
		)`,
		st.ID,
		st.ProjectID,
		nullString(st.ModuleID),
		st.Name,
		st.Description,
		string(st.Status),
		nullFloatPtr(st.EstimatedHours),
		nullTimePtr(st.DueDate),
		nullString(st.AssignedTo),
		st.PriorityStars,
		st.CreatedAt,
		st.CreatedBy,
		st.UpdatedAt,
	)
	return err
}

func queryGetSubtask(ctx context.Context, db executor, id string) (*model.Subtask, error) {
	row := db.QueryRowContext(ctx, `
		SELECT `+subtaskColumns+`
		FROM subtasks s JOIN projects p ON s.project_id = p.id
		WHERE s.id = $1`, id)
	st, err := scanSubtask(row)
	if err != nil {
		return nil, err
	}

	logs, err := queryGetWorkLogs(ctx, db, id)
	if err != nil {
		return nil, err
	}
	st.WorkLogs = logs

	deps, err := queryGetDependencies(ctx, db, id)
	if err != nil {
		return nil, err
	}
	st.Dependencies = deps

	return st, nil
}

func queryListSubtasks(ctx context.Context, db executor, filter model.SubtaskFilter) ([]*model.Subtask, int, error) {
	var (
		whereClauses []string
		args         []any
		argIdx       int
	)

	nextArg := func() string {
		argIdx++
		return fmt.Sprintf("$%d", argIdx)
	}

	if len(filter.ProjectIDs) > 0 {
		placeholders := make([]string, len(filter.ProjectIDs))
		for i, id := range filter.ProjectIDs {
			placeholders[i] = nextArg()
			args = append(args, id)
		}
		whereClauses = append(whereClauses, "s.project_id IN ("+strings.Join(placeholders, ", ")+")")
	}

	if len(filter.Status) > 0 {
		placeholders := make([]string, len(filter.Status))
		for i, s := range filter.Status {
			placeholders[i] = nextArg()
			args = append(args, string(s))
		}
		whereClauses = append(whereClauses, "s.status IN ("+strings.Join(placeholders, ", ")+")")
	}

	if filter.AssignedTo != "" {
		whereClauses = append(whereClauses, "s.assigned_to = "+nextArg())
		args = append(args, filter.AssignedTo)
	}

	if filter.Unassigned {
		whereClauses = append(whereClauses, "s.assigned_to IS NULL")
	}

	if filter.Priority != nil {
		whereClauses = append(whereClauses, "s.priority_stars = "+nextArg())
		args = append(args, *filter.Priority)
	}

	if filter.Search != "" {
		p := nextArg()
		whereClauses = append(whereClauses,
			fmt.Sprintf("(s.name ILIKE '%%' || %s || '%%' OR s.description ILIKE '%%' || %s || '%%')", p, p))
		args = append(args, filter.Search)
	}

	whereSQL := ""
	if len(whereClauses) > 0 {
		whereSQL = " WHERE " + strings.Join(whereClauses, " AND ")
	}

	// Single query with COUNT(*) OVER() to get total and rows atomically.
	dataQuery := "SELECT COUNT(*) OVER() AS total_count, " + subtaskColumns +
		" FROM subtasks s JOIN projects p ON s.project_id = p.id" + whereSQL +
		" ORDER BY " + parseSortClause(filter.Sort)

	if filter.Limit > 0 {
		dataQuery += " LIMIT " + nextArg()
		args = append(args, filter.Limit)
	}
	if filter.Offset > 0 {
		dataQuery += " OFFSET " + nextArg()
		args = append(args, filter.Offset)
	}

	rows, err := db.QueryContext(ctx, dataQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list subtasks: %w", err)
	}
	defer rows.Close()

	var subtasks []*model.Subtask
	var total int
	for rows.Next() {
		st, t, err := scanSubtaskWithTotal(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan subtasks: %w", err)
		}
		total = t
		subtasks = append(subtasks, st)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("scan subtasks: %w", err)
	}

	return subtasks, total, nil
}

func queryUpdateSubtask(ctx context.Context, db executor, st *model.Subtask) error {
	return db.QueryRowContext(ctx, `
		UPDATE subtasks SET
			module_id = $2,
			name = $3,
			description = $4,
			status = $5,
			estimated_hours = $6,
			due_date = $7,
			assigned_to = $8,
			priority_stars = $9,
			updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`,
		st.ID,
		nullString(st.ModuleID),
		st.Name,
		st.Description,
		string(st.Status),
		nullFloatPtr(st.EstimatedHours),
		nullTimePtr(st.DueDate),
		nullString(st.AssignedTo),
		st.PriorityStars,
	).Scan(&st.UpdatedAt)
}

func queryDeleteSubtask(ctx context.Context, db executor, id string) error {
	res, err := db.ExecContext(ctx, `DELETE FROM subtasks WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func queryAddWorkLog(ctx context.Context, db executor, wl *model.WorkLog) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO work_logs (id, subtask_id, hours_spent, note, logged_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		wl.ID, wl.SubtaskID, wl.HoursSpent, nullString(wl.Note), nullString(wl.LoggedBy), wl.CreatedAt,
	)
	return err
}

func queryGetWorkLogs(ctx context.Context, db executor, subtaskID string) ([]*model.WorkLog, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT id, subtask_id, hours_spent, note, logged_by, created_at
		FROM work_logs WHERE subtask_id = $1 ORDER BY created_at`, subtaskID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []*model.WorkLog
	for rows.Next() {
		wl, err := scanWorkLog(rows)
		if err != nil {
			return nil, err
		}
		logs = append(logs, wl)
	}
	return logs, rows.Err()
}

func queryAddDependency(ctx context.Context, db executor, dep *model.Dependency) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO deps (subtask_id, depends_on_id, created_at, created_by)
		VALUES ($1, $2, $3, $4)`,
		dep.SubtaskID, dep.DependsOnID, dep.CreatedAt, dep.CreatedBy,
	)
	return err
}

func queryRemoveDependency(ctx context.Context, db executor, subtaskID, dependsOnID string) error {
	res, err := db.ExecContext(ctx,
		`DELETE FROM deps WHERE subtask_id = $1 AND depends_on_id = $2`,
		subtaskID, dependsOnID,
	)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func queryGetDependencies(ctx context.Context, db executor, subtaskID string) ([]*model.Dependency, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT d.subtask_id, d.depends_on_id, d.created_at, d.created_by, b.name, b.status
		FROM deps d JOIN subtasks b ON d.depends_on_id = b.id
		WHERE d.subtask_id = $1 ORDER BY d.created_at`, subtaskID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var deps []*model.Dependency
	for rows.Next() {
		var d model.Dependency
		var createdBy sql.NullString
		if err := rows.Scan(&d.SubtaskID, &d.DependsOnID, &d.CreatedAt, &createdBy, &d.DependsOnName, &d.DependsOnStatus); err != nil {
			return nil, err
		}
		d.CreatedBy = createdBy.String
		deps = append(deps, &d)
	}
	return deps, rows.Err()
}

func queryGetBlockers(ctx context.Context, db executor, subtaskID string) ([]*model.Subtask, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT `+subtaskColumns+`
		FROM deps d
		JOIN subtasks s ON d.depends_on_id = s.id
		JOIN projects p ON s.project_id = p.id
		WHERE d.subtask_id = $1 AND s.status != 'done'
		ORDER BY d.created_at`, subtaskID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var blockers []*model.Subtask
	for rows.Next() {
		st, err := scanSubtask(rows)
		if err != nil {
			return nil, err
		}
		blockers = append(blockers, st)
	}
	return blockers, rows.Err()
}

func queryCreateTaskRequest(ctx context.Context, db executor, req *model.TaskRequest) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO task_requests (id, task_name, project_id, module_name, requested_by, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		req.ID, req.TaskName, req.ProjectID, nullString(req.ModuleName),
		nullString(req.RequestedBy), string(req.Status), req.CreatedAt,
	)
	return err
}

const requestColumns = `r.id, r.task_name, r.project_id, p.name AS project_name,
	r.module_name, r.requested_by, r.status, r.resolved_by, r.resolved_at, r.created_at`

func queryGetTaskRequest(ctx context.Context, db executor, id string) (*model.TaskRequest, error) {
	row := db.QueryRowContext(ctx, `
		SELECT `+requestColumns+`
		FROM task_requests r JOIN projects p ON r.project_id = p.id
		WHERE r.id = $1`, id)
	return scanTaskRequest(row)
}

func queryListTaskRequests(ctx context.Context, db executor, status model.RequestStatus) ([]*model.TaskRequest, error) {
	query := `SELECT ` + requestColumns + `
		FROM task_requests r JOIN projects p ON r.project_id = p.id`
	var args []any
	if status != "" {
		query += ` WHERE r.status = $1`
		args = append(args, string(status))
	}
	query += ` ORDER BY r.created_at`

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var requests []*model.TaskRequest
	for rows.Next() {
		req, err := scanTaskRequest(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, req)
	}
	return requests, rows.Err()
}

func queryResolveTaskRequest(ctx context.Context, db executor, id string, status model.RequestStatus, resolvedBy string) (*model.TaskRequest, error) {
	_, err := db.ExecContext(ctx, `
		UPDATE task_requests SET status = $2, resolved_by = $3, resolved_at = NOW()
		WHERE id = $1 AND status = 'pending'`,
		id, string(status), resolvedBy,
	)
	if err != nil {
		return nil, err
	}
	return queryGetTaskRequest(ctx, db, id)
}

func queryCreateProject(ctx context.Context, db executor, p *model.Project) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO projects (id, name, owner_id, created_at)
		VALUES ($1, $2, $3, $4)`,
		p.ID, p.Name, nullString(p.OwnerID), p.CreatedAt,
	)
	return err
}

func queryGetProject(ctx context.Context, db executor, id string) (*model.Project, error) {
	var p model.Project
	var ownerID sql.NullString
	err := db.QueryRowContext(ctx,
		`SELECT id, name, owner_id, created_at FROM projects WHERE id = $1`, id,
	).Scan(&p.ID, &p.Name, &ownerID, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	p.OwnerID = ownerID.String
	return &p, nil
}

func queryListProjects(ctx context.Context, db executor) ([]*model.Project, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT id, name, owner_id, created_at FROM projects ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var projects []*model.Project
	for rows.Next() {
		var p model.Project
		var ownerID sql.NullString
		if err := rows.Scan(&p.ID, &p.Name, &ownerID, &p.CreatedAt); err != nil {
			return nil, err
		}
		p.OwnerID = ownerID.String
		projects = append(projects, &p)
	}
	return projects, rows.Err()
}

func queryAddMember(ctx context.Context, db executor, m *model.Member) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO members (user_id, project_id, role, added_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, project_id) DO UPDATE SET role = EXCLUDED.role`,
		m.UserID, m.ProjectID, string(m.Role), m.AddedAt,
	)
	return err
}

func queryListMembers(ctx context.Context, db executor, projectID string) ([]*model.Member, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT user_id, project_id, role, added_at
		FROM members WHERE project_id = $1 ORDER BY added_at`, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanMembers(rows)
}

func queryListMemberships(ctx context.Context, db executor, userID string) ([]*model.Member, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT user_id, project_id, role, added_at
		FROM members WHERE user_id = $1 ORDER BY added_at`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanMembers(rows)
}

func queryGetProfile(ctx context.Context, db executor, userID string) (*model.Profile, error) {
	var p model.Profile
	var displayName sql.NullString
	err := db.QueryRowContext(ctx,
		`SELECT user_id, display_name, admin, created_at FROM profiles WHERE user_id = $1`, userID,
	).Scan(&p.UserID, &displayName, &p.Admin, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	p.DisplayName = displayName.String
	return &p, nil
}

func queryUpsertProfile(ctx context.Context, db executor, p *model.Profile) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO profiles (user_id, display_name, admin, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id) DO UPDATE SET display_name = EXCLUDED.display_name, admin = EXCLUDED.admin`,
		p.UserID, nullString(p.DisplayName), p.Admin, p.CreatedAt,
	)
	return err
}

func queryRecordEvent(ctx context.Context, db executor, event *model.Event) error {
	return db.QueryRowContext(ctx, `
		INSERT INTO events (topic, subtask_id, actor, payload)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`,
		event.Topic, nullString(event.SubtaskID), nullString(event.Actor), jsonbBytes(event.Payload),
	).Scan(&event.ID, &event.CreatedAt)
}

func queryGetEvents(ctx context.Context, db executor, subtaskID string) ([]*model.Event, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT id, topic, subtask_id, actor, payload, created_at
		FROM events WHERE subtask_id = $1 ORDER BY created_at`, subtaskID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []*model.Event
	for rows.Next() {
		ev, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, ev)
	}
	return events, rows.Err()
}

func queryGetStats(ctx context.Context, db executor) (*model.ProjectStats, error) {
	var stats model.ProjectStats
	err := db.QueryRowContext(ctx, `
		SELECT
			COUNT(*) FILTER (WHERE status = 'todo'),
			COUNT(*) FILTER (WHERE status = 'in_progress'),
			COUNT(*) FILTER (WHERE status = 'blocked'),
			COUNT(*) FILTER (WHERE status = 'review'),
			COUNT(*) FILTER (WHERE status = 'done'),
			(SELECT COUNT(*) FROM task_requests WHERE status = 'pending')
		FROM subtasks`,
	).Scan(
		&stats.TotalTodo,
		&stats.TotalInProgress,
		&stats.TotalBlocked,
		&stats.TotalReview,
		&stats.TotalDone,
		&stats.PendingRequests,
	)
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

func parseSortClause(sort string) string {
	if sort == "" {
		return "s.created_at DESC"
	}
	desc := strings.HasPrefix(sort, "-")
	col := strings.TrimPrefix(sort, "-")
	allowed := map[string]bool{
		"priority_stars": true, "created_at": true, "updated_at": true,
		"name": true, "status": true, "due_date": true,
	}
	if !allowed[col] {
		return "s.created_at DESC"
	}
	if desc {
		return "s." + col + " DESC"
	}
	return "s." + col + " ASC"
}
