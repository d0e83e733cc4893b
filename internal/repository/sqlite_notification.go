package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/kmadrilejo/atelier/internal/db"
	"github.com/kmadrilejo/atelier/internal/domain"
)

// SQLiteNotificationRepo implements the bounded notification log. Run Append
// inside a transaction so the cap eviction lands atomically with the insert.
type SQLiteNotificationRepo struct {
	db db.DBTX
}

// NewSQLiteNotificationRepo creates a new SQLiteNotificationRepo.
func NewSQLiteNotificationRepo(conn db.DBTX) *SQLiteNotificationRepo {
	return &SQLiteNotificationRepo{db: conn}
}

func (r *SQLiteNotificationRepo) Append(ctx context.Context, n *domain.TaskNotification) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO task_notifications (id, project_id, project_name, task_id, task_name, type,
			message, triggered_at, requires_confirmation, allow_start_date_edit, suggested_start_date, seq)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?,
			(SELECT COALESCE(MAX(seq), 0) + 1 FROM task_notifications))`,
		n.ID, n.ProjectID, n.ProjectName, n.TaskID, n.TaskName, string(n.Type),
		n.Message,
		n.TriggeredAt.Format(time.RFC3339),
		boolToInt(n.RequiresConfirmation),
		boolToInt(n.AllowStartDateEdit),
		n.SuggestedStartDate.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting notification: %w", err)
	}

	// Oldest-first eviction keeps the log at the cap.
	_, err = r.db.ExecContext(ctx,
		`DELETE FROM task_notifications WHERE seq <= (
			(SELECT COALESCE(MAX(seq), 0) FROM task_notifications) - ?)`,
		domain.NotificationCap)
	if err != nil {
		return fmt.Errorf("evicting old notifications: %w", err)
	}
	return nil
}

func (r *SQLiteNotificationRepo) ListByProject(ctx context.Context, projectID string) ([]domain.TaskNotification, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, project_id, project_name, task_id, task_name, type, message,
			triggered_at, requires_confirmation, allow_start_date_edit, suggested_start_date
		FROM task_notifications WHERE project_id = ?
		ORDER BY seq DESC`, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing notifications: %w", err)
	}
	defer rows.Close()

	var notifications []domain.TaskNotification
	for rows.Next() {
		var n domain.TaskNotification
		var typeStr, triggeredStr, suggestedStr string
		var requires, editable int
		if err := rows.Scan(&n.ID, &n.ProjectID, &n.ProjectName, &n.TaskID, &n.TaskName,
			&typeStr, &n.Message, &triggeredStr, &requires, &editable, &suggestedStr); err != nil {
			return nil, fmt.Errorf("scanning notification: %w", err)
		}
		n.Type = domain.NotificationType(typeStr)
		n.TriggeredAt, _ = time.Parse(time.RFC3339, triggeredStr)
		n.RequiresConfirmation = intToBool(requires)
		n.AllowStartDateEdit = intToBool(editable)
		n.SuggestedStartDate, _ = time.Parse(time.RFC3339, suggestedStr)
		notifications = append(notifications, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating notifications: %w", err)
	}
	return notifications, nil
}

func (r *SQLiteNotificationRepo) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM task_notifications`).Scan(&count); err != nil {
		return 0, fmt.Errorf("counting notifications: %w", err)
	}
	return count, nil
}
