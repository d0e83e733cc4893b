package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/kmadrilejo/atelier/internal/db"
	"github.com/kmadrilejo/atelier/internal/domain"
)

// SQLiteProjectRepo implements ProjectRepo against SQLite. It accepts a
// db.DBTX so the same code serves both direct and transactional access.
type SQLiteProjectRepo struct {
	db db.DBTX
}

// NewSQLiteProjectRepo creates a new SQLiteProjectRepo.
func NewSQLiteProjectRepo(conn db.DBTX) *SQLiteProjectRepo {
	return &SQLiteProjectRepo{db: conn}
}

func (r *SQLiteProjectRepo) Create(ctx context.Context, p *domain.Project) error {
	query := `INSERT INTO projects (id, name, code, client_id, template_id, status, start_date, end_date,
			manager_id, budget, currency, active_sprint_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		p.ID,
		p.Name,
		p.Code,
		p.ClientID,
		p.TemplateID,
		string(p.Status),
		p.StartDate.Format(time.RFC3339),
		nullableTimeToString(p.EndDate, time.RFC3339),
		p.ManagerID,
		nullableFloatToValue(p.Budget),
		p.Currency,
		p.ActiveSprintID,
		p.CreatedAt.Format(time.RFC3339),
		p.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting project: %w", err)
	}
	return r.insertChildren(ctx, p)
}

// Save replaces the aggregate wholesale: the project row is updated and all
// child rows are deleted and re-inserted within the caller's transaction.
func (r *SQLiteProjectRepo) Save(ctx context.Context, p *domain.Project) error {
	query := `UPDATE projects SET name = ?, code = ?, client_id = ?, template_id = ?, status = ?,
			start_date = ?, end_date = ?, manager_id = ?, budget = ?, currency = ?,
			active_sprint_id = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		p.Name,
		p.Code,
		p.ClientID,
		p.TemplateID,
		string(p.Status),
		p.StartDate.Format(time.RFC3339),
		nullableTimeToString(p.EndDate, time.RFC3339),
		p.ManagerID,
		nullableFloatToValue(p.Budget),
		p.Currency,
		p.ActiveSprintID,
		p.UpdatedAt.Format(time.RFC3339),
		p.ID,
	)
	if err != nil {
		return fmt.Errorf("updating project: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking project update: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("project %q: %w", p.ID, domain.ErrNotFound)
	}

	for _, table := range []string{"tasks", "milestones", "sprints"} {
		if _, err := r.db.ExecContext(ctx,
			fmt.Sprintf("DELETE FROM %s WHERE project_id = ?", table), p.ID); err != nil {
			return fmt.Errorf("clearing %s: %w", table, err)
		}
	}
	return r.insertChildren(ctx, p)
}

func (r *SQLiteProjectRepo) insertChildren(ctx context.Context, p *domain.Project) error {
	for i := range p.Tasks {
		if err := r.insertTask(ctx, p.ID, i, &p.Tasks[i]); err != nil {
			return err
		}
	}
	// Dependency rows reference task rows, so they go in after all tasks exist.
	for i := range p.Tasks {
		t := &p.Tasks[i]
		for pos, depID := range t.Dependencies {
			if _, err := r.db.ExecContext(ctx,
				`INSERT INTO task_dependencies (task_id, depends_on_id, position) VALUES (?, ?, ?)`,
				t.ID, depID, pos); err != nil {
				return fmt.Errorf("inserting dependency for task %q: %w", t.Name, err)
			}
		}
	}
	for i := range p.Milestones {
		m := &p.Milestones[i]
		if _, err := r.db.ExecContext(ctx,
			`INSERT INTO milestones (id, project_id, position, title, due_date, completed, created_at, updated_at)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			m.ID, p.ID, i, m.Title,
			m.DueDate.Format(time.RFC3339),
			boolToInt(m.Completed),
			m.CreatedAt.Format(time.RFC3339),
			m.UpdatedAt.Format(time.RFC3339),
		); err != nil {
			return fmt.Errorf("inserting milestone %q: %w", m.Title, err)
		}
	}
	for i := range p.Sprints {
		s := &p.Sprints[i]
		if _, err := r.db.ExecContext(ctx,
			`INSERT INTO sprints (id, project_id, position, name, status, start_date, end_date,
				committed_points, completed_points, focus_areas, created_at, updated_at)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			s.ID, p.ID, i, s.Name, string(s.Status),
			s.StartDate.Format(time.RFC3339),
			s.EndDate.Format(time.RFC3339),
			s.CommittedPoints, s.CompletedPoints,
			strings.Join(s.FocusAreas, ","),
			s.CreatedAt.Format(time.RFC3339),
			s.UpdatedAt.Format(time.RFC3339),
		); err != nil {
			return fmt.Errorf("inserting sprint %q: %w", s.Name, err)
		}
	}
	return nil
}

func (r *SQLiteProjectRepo) insertTask(ctx context.Context, projectID string, position int, t *domain.Task) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO tasks (id, project_id, position, name, status, type, priority, assignee_id, leader_id,
			start_date, due_date, estimated_hours, logged_hours, story_points, billable, sprint_id,
			created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, projectID, position, t.Name, string(t.Status), string(t.Type), string(t.Priority),
		t.AssigneeID, t.LeaderID,
		nullableTimeToString(t.StartDate, time.RFC3339),
		nullableTimeToString(t.DueDate, time.RFC3339),
		nullableFloatToValue(t.EstimatedHours),
		t.LoggedHours,
		nullableFloatToValue(t.StoryPoints),
		boolToInt(t.Billable),
		t.SprintID,
		t.CreatedAt.Format(time.RFC3339),
		t.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting task %q: %w", t.Name, err)
	}
	return nil
}

func (r *SQLiteProjectRepo) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, name, code, client_id, template_id, status, start_date, end_date,
			manager_id, budget, currency, active_sprint_id, created_at, updated_at
		FROM projects WHERE id = ?`, id)

	p, err := scanProject(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("project %q: %w", id, domain.ErrNotFound)
		}
		return nil, err
	}
	if err := r.loadChildren(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (r *SQLiteProjectRepo) List(ctx context.Context) ([]*domain.Project, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, code, client_id, template_id, status, start_date, end_date,
			manager_id, budget, currency, active_sprint_id, created_at, updated_at
		FROM projects ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	defer rows.Close()

	var projects []*domain.Project
	for rows.Next() {
		p, err := scanProject(rows.Scan)
		if err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating projects: %w", err)
	}

	for _, p := range projects {
		if err := r.loadChildren(ctx, p); err != nil {
			return nil, err
		}
	}
	return projects, nil
}

func (r *SQLiteProjectRepo) CountByTemplate(ctx context.Context, templateID string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM projects WHERE template_id = ?`, templateID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting projects for template %q: %w", templateID, err)
	}
	return count, nil
}

func scanProject(scan func(dest ...any) error) (*domain.Project, error) {
	var p domain.Project
	var statusStr, startStr, createdStr, updatedStr string
	var endStr sql.NullString
	var budget sql.NullFloat64

	err := scan(
		&p.ID, &p.Name, &p.Code, &p.ClientID, &p.TemplateID,
		&statusStr, &startStr, &endStr,
		&p.ManagerID, &budget, &p.Currency, &p.ActiveSprintID,
		&createdStr, &updatedStr,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("scanning project: %w", err)
	}

	p.Status = domain.ProjectStatus(statusStr)
	if budget.Valid {
		p.Budget = &budget.Float64
	}

	var parseErr error
	p.StartDate, parseErr = time.Parse(time.RFC3339, startStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing start_date: %w", parseErr)
	}
	p.CreatedAt, parseErr = time.Parse(time.RFC3339, createdStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing created_at: %w", parseErr)
	}
	p.UpdatedAt, parseErr = time.Parse(time.RFC3339, updatedStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", parseErr)
	}
	p.EndDate = parseNullableTime(endStr, time.RFC3339)

	return &p, nil
}

func (r *SQLiteProjectRepo) loadChildren(ctx context.Context, p *domain.Project) error {
	if err := r.loadTasks(ctx, p); err != nil {
		return err
	}
	if err := r.loadMilestones(ctx, p); err != nil {
		return err
	}
	return r.loadSprints(ctx, p)
}

func (r *SQLiteProjectRepo) loadTasks(ctx context.Context, p *domain.Project) error {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, status, type, priority, assignee_id, leader_id, start_date, due_date,
			estimated_hours, logged_hours, story_points, billable, sprint_id, created_at, updated_at
		FROM tasks WHERE project_id = ? ORDER BY position`, p.ID)
	if err != nil {
		return fmt.Errorf("listing tasks: %w", err)
	}
	defer rows.Close()

	p.Tasks = nil
	for rows.Next() {
		var t domain.Task
		var statusStr, typeStr, priorityStr, createdStr, updatedStr string
		var startStr, dueStr sql.NullString
		var estimated, points sql.NullFloat64
		var billable int

		if err := rows.Scan(
			&t.ID, &t.Name, &statusStr, &typeStr, &priorityStr,
			&t.AssigneeID, &t.LeaderID, &startStr, &dueStr,
			&estimated, &t.LoggedHours, &points, &billable, &t.SprintID,
			&createdStr, &updatedStr,
		); err != nil {
			return fmt.Errorf("scanning task: %w", err)
		}

		t.Status = domain.TaskStatus(statusStr)
		t.Type = domain.TaskType(typeStr)
		t.Priority = domain.TaskPriority(priorityStr)
		t.StartDate = parseNullableTime(startStr, time.RFC3339)
		t.DueDate = parseNullableTime(dueStr, time.RFC3339)
		if estimated.Valid {
			t.EstimatedHours = &estimated.Float64
		}
		if points.Valid {
			t.StoryPoints = &points.Float64
		}
		t.Billable = intToBool(billable)
		t.CreatedAt, _ = time.Parse(time.RFC3339, createdStr)
		t.UpdatedAt, _ = time.Parse(time.RFC3339, updatedStr)

		p.Tasks = append(p.Tasks, t)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating tasks: %w", err)
	}

	return r.loadDependencies(ctx, p)
}

func (r *SQLiteProjectRepo) loadDependencies(ctx context.Context, p *domain.Project) error {
	rows, err := r.db.QueryContext(ctx,
		`SELECT d.task_id, d.depends_on_id
		FROM task_dependencies d
		JOIN tasks t ON t.id = d.task_id
		WHERE t.project_id = ?
		ORDER BY d.task_id, d.position`, p.ID)
	if err != nil {
		return fmt.Errorf("listing dependencies: %w", err)
	}
	defer rows.Close()

	deps := make(map[string][]string)
	for rows.Next() {
		var taskID, dependsOn string
		if err := rows.Scan(&taskID, &dependsOn); err != nil {
			return fmt.Errorf("scanning dependency: %w", err)
		}
		deps[taskID] = append(deps[taskID], dependsOn)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating dependencies: %w", err)
	}

	for i := range p.Tasks {
		p.Tasks[i].Dependencies = deps[p.Tasks[i].ID]
	}
	return nil
}

func (r *SQLiteProjectRepo) loadMilestones(ctx context.Context, p *domain.Project) error {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, title, due_date, completed, created_at, updated_at
		FROM milestones WHERE project_id = ? ORDER BY position`, p.ID)
	if err != nil {
		return fmt.Errorf("listing milestones: %w", err)
	}
	defer rows.Close()

	p.Milestones = nil
	for rows.Next() {
		var m domain.Milestone
		var dueStr, createdStr, updatedStr string
		var completed int
		if err := rows.Scan(&m.ID, &m.Title, &dueStr, &completed, &createdStr, &updatedStr); err != nil {
			return fmt.Errorf("scanning milestone: %w", err)
		}
		m.DueDate, _ = time.Parse(time.RFC3339, dueStr)
		m.Completed = intToBool(completed)
		m.CreatedAt, _ = time.Parse(time.RFC3339, createdStr)
		m.UpdatedAt, _ = time.Parse(time.RFC3339, updatedStr)
		p.Milestones = append(p.Milestones, m)
	}
	return rows.Err()
}

func (r *SQLiteProjectRepo) loadSprints(ctx context.Context, p *domain.Project) error {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, status, start_date, end_date, committed_points, completed_points,
			focus_areas, created_at, updated_at
		FROM sprints WHERE project_id = ? ORDER BY position`, p.ID)
	if err != nil {
		return fmt.Errorf("listing sprints: %w", err)
	}
	defer rows.Close()

	p.Sprints = nil
	for rows.Next() {
		var s domain.Sprint
		var statusStr, startStr, endStr, focusStr, createdStr, updatedStr string
		if err := rows.Scan(&s.ID, &s.Name, &statusStr, &startStr, &endStr,
			&s.CommittedPoints, &s.CompletedPoints, &focusStr, &createdStr, &updatedStr); err != nil {
			return fmt.Errorf("scanning sprint: %w", err)
		}
		s.Status = domain.SprintStatus(statusStr)
		s.StartDate, _ = time.Parse(time.RFC3339, startStr)
		s.EndDate, _ = time.Parse(time.RFC3339, endStr)
		if focusStr != "" {
			s.FocusAreas = strings.Split(focusStr, ",")
		}
		s.CreatedAt, _ = time.Parse(time.RFC3339, createdStr)
		s.UpdatedAt, _ = time.Parse(time.RFC3339, updatedStr)
		p.Sprints = append(p.Sprints, s)
	}
	return rows.Err()
}
