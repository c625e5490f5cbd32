// Package postgres implements the store.Store interface backed by PostgreSQL.
package postgres

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/lib/pq"

	"github.com/Mario960060/cosmichub/internal/model"
	"github.com/Mario960060/cosmichub/internal/store"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// PostgresStore implements store.Store backed by a PostgreSQL database.
type PostgresStore struct {
	db *sql.DB
}

// Compile-time check that PostgresStore implements store.Store.
var _ store.Store = (*PostgresStore)(nil)

// New opens a connection to the PostgreSQL database at the given URL,
// configures the connection pool, and runs any pending migrations.
func New(databaseURL string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &PostgresStore{db: db}, nil
}

func runMigrations(db *sql.DB) error {
	sourceDriver, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("create migration source: %w", err)
	}

	dbDriver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("create migration db driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", sourceDriver, "postgres", dbDriver)
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("apply migrations: %w", err)
	}

	return nil
}

// Close closes the underlying database connection.
func (s *PostgresStore) Close() error {
	return s.db.Close()
}

func (s *PostgresStore) CreateSubtask(ctx context.Context, st *model.Subtask) error {
	return queryCreateSubtask(ctx, s.db, st)
}

func (s *PostgresStore) GetSubtask(ctx context.Context, id string) (*model.Subtask, error) {
	return queryGetSubtask(ctx, s.db, id)
}

func (s *PostgresStore) ListSubtasks(ctx context.Context, filter model.SubtaskFilter) ([]*model.Subtask, int, error) {
	return queryListSubtasks(ctx, s.db, filter)
}

func (s *PostgresStore) UpdateSubtask(ctx context.Context, st *model.Subtask) error {
	return queryUpdateSubtask(ctx, s.db, st)
}

func (s *PostgresStore) DeleteSubtask(ctx context.Context, id string) error {
	return queryDeleteSubtask(ctx, s.db, id)
}

func (s *PostgresStore) AddWorkLog(ctx context.Context, wl *model.WorkLog) error {
	return queryAddWorkLog(ctx, s.db, wl)
}

func (s *PostgresStore) GetWorkLogs(ctx context.Context, subtaskID string) ([]*model.WorkLog, error) {
	return queryGetWorkLogs(ctx, s.db, subtaskID)
}

func (s *PostgresStore) AddDependency(ctx context.Context, dep *model.Dependency) error {
	return queryAddDependency(ctx, s.db, dep)
}

func (s *PostgresStore) RemoveDependency(ctx context.Context, subtaskID, dependsOnID string) error {
	return queryRemoveDependency(ctx, s.db, subtaskID, dependsOnID)
}

func (s *PostgresStore) GetDependencies(ctx context.Context, subtaskID string) ([]*model.Dependency, error) {
	return queryGetDependencies(ctx, s.db, subtaskID)
}

func (s *PostgresStore) GetBlockers(ctx context.Context, subtaskID string) ([]*model.Subtask, error) {
	return queryGetBlockers(ctx, s.db, subtaskID)
}

func (s *PostgresStore) CreateTaskRequest(ctx context.Context, req *model.TaskRequest) error {
	return queryCreateTaskRequest(ctx, s.db, req)
}

func (s *PostgresStore) GetTaskRequest(ctx context.Context, id string) (*model.TaskRequest, error) {
	return queryGetTaskRequest(ctx, s.db, id)
}

func (s *PostgresStore) ListTaskRequests(ctx context.Context, status model.RequestStatus) ([]*model.TaskRequest, error) {
	return queryListTaskRequests(ctx, s.db, status)
}

func (s *PostgresStore) ResolveTaskRequest(ctx context.Context, id string, status model.RequestStatus, resolvedBy string) (*model.TaskRequest, error) {
	return queryResolveTaskRequest(ctx, s.db, id, status, resolvedBy)
}

func (s *PostgresStore) CreateProject(ctx context.Context, p *model.Project) error {
	return queryCreateProject(ctx, s.db, p)
}

func (s *PostgresStore) GetProject(ctx context.Context, id string) (*model.Project, error) {
	return queryGetProject(ctx, s.db, id)
}

func (s *PostgresStore) ListProjects(ctx context.Context) ([]*model.Project, error) {
	return queryListProjects(ctx, s.db)
}

func (s *PostgresStore) AddMember(ctx context.Context, m *model.Member) error {
	return queryAddMember(ctx, s.db, m)
}

func (s *PostgresStore) ListMembers(ctx context.Context, projectID string) ([]*model.Member, error) {
	return queryListMembers(ctx, s.db, projectID)
}

func (s *PostgresStore) ListMemberships(ctx context.Context, userID string) ([]*model.Member, error) {
	return queryListMemberships(ctx, s.db, userID)
}

func (s *PostgresStore) GetProfile(ctx context.Context, userID string) (*model.Profile, error) {
	return queryGetProfile(ctx, s.db, userID)
}

func (s *PostgresStore) UpsertProfile(ctx context.Context, p *model.Profile) error {
	return queryUpsertProfile(ctx, s.db, p)
}

func (s *PostgresStore) RecordEvent(ctx context.Context, event *model.Event) error {
	return queryRecordEvent(ctx, s.db, event)
}

func (s *PostgresStore) GetEvents(ctx context.Context, subtaskID string) ([]*model.Event, error) {
	return queryGetEvents(ctx, s.db, subtaskID)
}

func (s *PostgresStore) GetStats(ctx context.Context) (*model.ProjectStats, error) {
	return queryGetStats(ctx, s.db)
}

// RunInTransaction begins a database transaction, creates a txStore that
// delegates to it, calls fn, and commits on success or rolls back on error.
func (s *PostgresStore) RunInTransaction(ctx context.Context, fn func(tx store.Store) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	txS := &txStore{tx: tx}
	if err := fn(txS); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// txStore implements store.Store using a *sql.Tx.
type txStore struct {
	tx *sql.Tx
}

// Compile-time check that txStore implements store.Store.
var _ store.Store = (*txStore)(nil)

func (s *txStore) CreateSubtask(ctx context.Context, st *model.Subtask) error {
	return queryCreateSubtask(ctx, s.tx, st)
}

func (s *txStore) GetSubtask(ctx context.Context, id string) (*model.Subtask, error) {
	return queryGetSubtask(ctx, s.tx, id)
}

func (s *txStore) ListSubtasks(ctx context.Context, filter model.SubtaskFilter) ([]*model.Subtask, int, error) {
	return queryListSubtasks(ctx, s.tx, filter)
}

func (s *txStore) UpdateSubtask(ctx context.Context, st *model.Subtask) error {
	return queryUpdateSubtask(ctx, s.tx, st)
}

func (s *txStore) DeleteSubtask(ctx context.Context, id string) error {
	return queryDeleteSubtask(ctx, s.tx, id)
}

func (s *txStore) AddWorkLog(ctx context.Context, wl *model.WorkLog) error {
	return queryAddWorkLog(ctx, s.tx, wl)
}

func (s *txStore) GetWorkLogs(ctx context.Context, subtaskID string) ([]*model.WorkLog, error) {
	return queryGetWorkLogs(ctx, s.tx, subtaskID)
}

func (s *txStore) AddDependency(ctx context.Context, dep *model.Dependency) error {
	return queryAddDependency(ctx, s.tx, dep)
}

func (s *txStore) RemoveDependency(ctx context.Context, subtaskID, dependsOnID string) error {
	return queryRemoveDependency(ctx, s.tx, subtaskID, dependsOnID)
}

func (s *txStore) GetDependencies(ctx context.Context, subtaskID string) ([]*model.Dependency, error) {
	return queryGetDependencies(ctx, s.tx, subtaskID)
}

func (s *txStore) GetBlockers(ctx context.Context, subtaskID string) ([]*model.Subtask, error) {
	return queryGetBlockers(ctx, s.tx, subtaskID)
}

func (s *txStore) CreateTaskRequest(ctx context.Context, req *model.TaskRequest) error {
	return queryCreateTaskRequest(ctx, s.tx, req)
}

func (s *txStore) GetTaskRequest(ctx context.Context, id string) (*model.TaskRequest, error) {
	return queryGetTaskRequest(ctx, s.tx, id)
}

func (s *txStore) ListTaskRequests(ctx context.Context, status model.RequestStatus) ([]*model.TaskRequest, error) {
	return queryListTaskRequests(ctx, s.tx, status)
}

func (s *txStore) ResolveTaskRequest(ctx context.Context, id string, status model.RequestStatus, resolvedBy string) (*model.TaskRequest, error) {
	return queryResolveTaskRequest(ctx, s.tx, id, status, resolvedBy)
}

func (s *txStore) CreateProject(ctx context.Context, p *model.Project) error {
	return queryCreateProject(ctx, s.tx, p)
}

func (s *txStore) GetProject(ctx context.Context, id string) (*model.Project, error) {
	return queryGetProject(ctx, s.tx, id)
}

func (s *txStore) ListProjects(ctx context.Context) ([]*model.Project, error) {
	return queryListProjects(ctx, s.tx)
}

func (s *txStore) AddMember(ctx context.Context, m *model.Member) error {
	return queryAddMember(ctx, s.tx, m)
}

func (s *txStore) ListMembers(ctx context.Context, projectID string) ([]*model.Member, error) {
	return queryListMembers(ctx, s.tx, projectID)
}

func (s *txStore) ListMemberships(ctx context.Context, userID string) ([]*model.Member, error) {
	return queryListMemberships(ctx, s.tx, userID)
}

func (s *txStore) GetProfile(ctx context.Context, userID string) (*model.Profile, error) {
	return queryGetProfile(ctx, s.tx, userID)
}

func (s *txStore) UpsertProfile(ctx context.Context, p *model.Profile) error {
	return queryUpsertProfile(ctx, s.tx, p)
}

func (s *txStore) RecordEvent(ctx context.Context, event *model.Event) error {
	return queryRecordEvent(ctx, s.tx, event)
}

func (s *txStore) GetEvents(ctx context.Context, subtaskID string) ([]*model.Event, error) {
	return queryGetEvents(ctx, s.tx, subtaskID)
}

func (s *txStore) GetStats(ctx context.Context) (*model.ProjectStats, error) {
	return queryGetStats(ctx, s.tx)
}

// RunInTransaction on a txStore reuses the already-open transaction.
func (s *txStore) RunInTransaction(ctx context.Context, fn func(tx store.Store) error) error {
	return fn(s)
}

// Close is a no-op for txStore; the transaction owner closes the connection.
func (s *txStore) Close() error { return nil }
