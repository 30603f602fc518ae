package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"fintrack/internal/core"
)

func (r *SQLiteRepository) CreateNotification(ctx context.Context, n *core.Notification) error {
	n.CreatedAt = time.Now().UTC()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO notifications (id, user_id, kind, message, created_at) VALUES (?, ?, ?, ?, ?)`,
		n.ID.String(), n.UserID.String(), string(n.Kind), n.Message, n.CreatedAt.Format(timeLayout))
	if err != nil {
		return fmt.Errorf("create notification: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) ListNotifications(ctx context.Context, userID uuid.UUID, limit int) ([]core.Notification, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, kind, message, created_at
		FROM notifications WHERE user_id = ?
		ORDER BY created_at DESC LIMIT ?`,
		userID.String(), limit)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	defer rows.Close()

	var notifications []core.Notification
	for rows.Next() {
		var (
			n                    core.Notification
			idStr, userStr, kind string
			createdStr           string
		)
		if err := rows.Scan(&idStr, &userStr, &kind, &n.Message, &createdStr); err != nil {
			return nil, fmt.Errorf("scan notification: %w", err)
		}
		if n.ID, err = uuid.Parse(idStr); err != nil {
			return nil, fmt.Errorf("parse notification id: %w", err)
		}
		if n.UserID, err = uuid.Parse(userStr); err != nil {
			return nil, fmt.Errorf("parse notification user id: %w", err)
		}
		n.Kind = core.NotificationKind(kind)
		n.CreatedAt = scanTime(createdStr)
		notifications = append(notifications, n)
	}
	return notifications, rows.Err()
}
