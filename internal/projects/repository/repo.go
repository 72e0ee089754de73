package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/GoSim-25-26J-441/project-tracker/internal/projects/domain"
	"github.com/GoSim-25-26J-441/project-tracker/internal/storage/database"
)

// ErrDuplicateID is returned by Insert when the id is already taken.
var ErrDuplicateID = errors.New("project id already exists")

const projectColumns = `id, name, client_name, status, start_date, end_date, description, created_at, updated_at, deleted_at`

// projectRow mirrors a row of the projects table.
type projectRow struct {
	ID          string             `db:"id"`
	Name        string             `db:"name"`
	ClientName  string             `db:"client_name"`
	Status      string             `db:"status"`
	StartDate   string             `db:"start_date"`
	EndDate     sql.NullString     `db:"end_date"`
	Description sql.NullString     `db:"description"`
	CreatedAt   database.Timestamp `db:"created_at"`
	UpdatedAt   database.Timestamp `db:"updated_at"`
	DeletedAt   database.Timestamp `db:"deleted_at"`
}

func (r projectRow) toDomain() domain.Project {
	p := domain.Project{
		ID:         r.ID,
		Name:       r.Name,
		ClientName: r.ClientName,
		Status:     domain.Status(r.Status),
		StartDate:  r.StartDate,
		CreatedAt:  r.CreatedAt.Time,
		UpdatedAt:  r.UpdatedAt.Time,
		DeletedAt:  r.DeletedAt.Ptr(),
	}
	if r.EndDate.Valid {
		v := r.EndDate.String
		p.EndDate = &v
	}
	if r.Description.Valid {
		v := r.Description.String
		p.Description = &v
	}
	return p
}

// ProjectRepository provides persistence operations for projects.
// SQL is written with ? placeholders and rebound for the connected driver.
type ProjectRepository struct {
	db *sqlx.DB
}

// NewProjectRepository creates a new project repository
func NewProjectRepository(db *sqlx.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

// Insert stores a new project and returns the row as written.
func (r *ProjectRepository) Insert(ctx context.Context, p *domain.Project) (*domain.Project, error) {
	q := r.db.Rebind(`
INSERT INTO projects (id, name, client_name, status, start_date, end_date, description, created_at, updated_at, deleted_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, NULL)
RETURNING ` + projectColumns)

	var row projectRow
	err := r.db.GetContext(ctx, &row, q,
		p.ID, p.Name, p.ClientName, string(p.Status), p.StartDate,
		nullString(p.EndDate), nullString(p.Description), p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return nil, ErrDuplicateID
		}
		return nil, fmt.Errorf("insert project: %w", err)
	}

	out := row.toDomain()
	return &out, nil
}

// List returns the live projects matching f. f is expected to be normalized.
func (r *ProjectRepository) List(ctx context.Context, f domain.ListFilter) ([]domain.Project, error) {
	q, args := buildListQuery(f)

	var rows []projectRow
	if err := r.db.SelectContext(ctx, &rows, r.db.Rebind(q), args...); err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}

	out := make([]domain.Project, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

// GetByID returns the live project with the given id.
func (r *ProjectRepository) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	q := r.db.Rebind(`SELECT ` + projectColumns + ` FROM projects WHERE id = ? AND deleted_at IS NULL`)

	var row projectRow
	if err := r.db.GetContext(ctx, &row, q, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NewNotFoundError()
		}
		return nil, fmt.Errorf("get project: %w", err)
	}

	out := row.toDomain()
	return &out, nil
}

// UpdateStatus sets the status of a live project and returns the new row.
func (r *ProjectRepository) UpdateStatus(ctx context.Context, id string, status domain.Status, at time.Time) (*domain.Project, error) {
	q := r.db.Rebind(`
UPDATE projects
SET status = ?, updated_at = ?
WHERE id = ? AND deleted_at IS NULL
RETURNING ` + projectColumns)

	var row projectRow
	if err := r.db.GetContext(ctx, &row, q, string(status), at, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NewNotFoundError()
		}
		return nil, fmt.Errorf("update project status: %w", err)
	}

	out := row.toDomain()
	return &out, nil
}

// SoftDelete marks a live project as deleted. It reports false when no live
// row had that id.
func (r *ProjectRepository) SoftDelete(ctx context.Context, id string, at time.Time) (bool, error) {
	q := r.db.Rebind(`
UPDATE projects
SET deleted_at = ?, updated_at = ?
WHERE id = ? AND deleted_at IS NULL`)

	result, err := r.db.ExecContext(ctx, q, at, at, id)
	if err != nil {
		return false, fmt.Errorf("soft delete project: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return rowsAffected > 0, nil
}

var sortColumns = map[string]string{
	domain.SortByCreatedAt: "created_at",
	domain.SortByStartDate: "start_date",
}

func buildListQuery(f domain.ListFilter) (string, []interface{}) {
	var (
		sb   strings.Builder
		args []interface{}
	)
	sb.WriteString(`SELECT ` + projectColumns + ` FROM projects WHERE deleted_at IS NULL`)

	if f.Status != "" {
		sb.WriteString(` AND status = ?`)
		args = append(args, string(f.Status))
	}

	if term := strings.TrimSpace(f.Search); term != "" {
		// both sides go through the engine's LOWER so they fold the same way
		sb.WriteString(` AND (LOWER(name) LIKE LOWER(?) ESCAPE '\' OR LOWER(client_name) LIKE LOWER(?) ESCAPE '\')`)
		pattern := "%" + escapeLike(term) + "%"
		args = append(args, pattern, pattern)
	}

	column, ok := sortColumns[f.SortBy]
	if !ok {
		column = "created_at"
	}
	order := "DESC"
	if f.SortOrder == domain.SortAsc {
		order = "ASC"
	}
	fmt.Fprintf(&sb, ` ORDER BY %s %s, id %s`, column, order, order)

	return sb.String(), args
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}
