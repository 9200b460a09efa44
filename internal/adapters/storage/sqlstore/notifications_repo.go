package sqlstore

import (
	"context"
	"database/sql"

	"pet-care-log/internal/domain/notifications"

	"github.com/pkg/errors"
)

type NotificationsRepo struct {
	s *Store
}

func NewNotificationsRepo(s *Store) *NotificationsRepo {
	return &NotificationsRepo{s: s}
}

func (r *NotificationsRepo) ListByUser(ctx context.Context, userID string) ([]notifications.Setting, error) {
	return r.list(ctx, r.s.db, `
		SELECT id, user_id, type, enabled, times
		FROM notification_settings
		WHERE user_id = ?
		ORDER BY type ASC, id ASC
	`, userID)
}

// ReplaceForUser: delete + insert en una transacción.
func (r *NotificationsRepo) ReplaceForUser(ctx context.Context, userID string, settings []notifications.Setting) error {
	return r.s.inTx(ctx, func(tx *sql.Tx) error {
		if _, err := r.s.exec(ctx, tx, `DELETE FROM notification_settings WHERE user_id = ?`, userID); err != nil {
			return errors.Wrap(err, "delete settings")
		}
		for _, st := range settings {
			times, err := encodeTimes(st.Times)
			if err != nil {
				return err
			}
			if _, err := r.s.exec(ctx, tx, `
				INSERT INTO notification_settings (id, user_id, type, enabled, times)
				VALUES (?, ?, ?, ?, ?)
			`, st.ID, userID, string(st.Type), st.Enabled, times); err != nil {
				return errors.Wrap(err, "insert setting")
			}
		}
		return nil
	})
}

func (r *NotificationsRepo) ListEnabled(ctx context.Context) ([]notifications.Setting, error) {
	return r.list(ctx, r.s.db, `
		SELECT id, user_id, type, enabled, times
		FROM notification_settings
		WHERE enabled = ?
		ORDER BY user_id ASC, id ASC
	`, true)
}

func (r *NotificationsRepo) list(ctx context.Context, q queryer, query string, args ...any) ([]notifications.Setting, error) {
	rows, err := r.s.query(ctx, q, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "list settings")
	}
	defer rows.Close()

	out := make([]notifications.Setting, 0)
	for rows.Next() {
		var (
			st  notifications.Setting
			raw string
		)
		if err := rows.Scan(&st.ID, &st.UserID, &st.Type, &st.Enabled, &raw); err != nil {
			return nil, errors.Wrap(err, "scan setting")
		}
		if st.Times, err = decodeTimes(raw); err != nil {
			return nil, err
		}
		out = append(out, st)
	}
	return out, errors.Wrap(rows.Err(), "list settings")
}
