package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"exerciseTracker/models"
)

// LogFilter selects a user's exercises. From and To are inclusive YYYY-MM-DD
// bounds; Limit caps ListLog only, never CountLog.
type LogFilter struct {
	UserID int64
	From   *string
	To     *string
	Limit  *int
}

// where builds the predicate shared by CountLog and ListLog so both always
// see the same rows.
func (f LogFilter) where() (string, []any) {
	where := []string{"user_id = ?"}
	args := []any{f.UserID}
	if f.From != nil {
		where = append(where, "date >= ?")
		args = append(args, *f.From)
	}
	if f.To != nil {
		where = append(where, "date <= ?")
		args = append(args, *f.To)
	}
	return strings.Join(where, " AND "), args
}

// countQuery returns the COUNT(*) statement for f, with `?` placeholders.
func (f LogFilter) countQuery() (string, []any) {
	where, args := f.where()
	return "SELECT COUNT(*) FROM exercises WHERE " + where, args
}

// listQuery returns the ordered, optionally limited listing for f.
// Dates sort lexicographically, which is calendar order for YYYY-MM-DD.
func (f LogFilter) listQuery() (string, []any) {
	where, args := f.where()
	query := "SELECT id, user_id, description, duration, date FROM exercises WHERE " + where +
		" ORDER BY date ASC, id ASC"
	if f.Limit != nil {
		query += " LIMIT ?"
		args = append(args, *f.Limit)
	}
	return query, args
}

// CountLog returns how many exercises match f, ignoring f.Limit.
func (r *ExerciseRepository) CountLog(ctx context.Context, f LogFilter) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	query, args := f.countQuery()
	var n int64
	if err := r.db.QueryRowContext(ctx, r.db.Rebind(query), args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count exercises: %w", err)
	}
	return n, nil
}

// ListLog returns the exercises matching f, oldest first.
func (r *ExerciseRepository) ListLog(ctx context.Context, f LogFilter) ([]models.Exercise, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	query, args := f.listQuery()
	rows, err := r.db.QueryContext(ctx, r.db.Rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("list exercises: %w", err)
	}
	defer rows.Close()

	out := []models.Exercise{}
	for rows.Next() {
		var e models.Exercise
		if err := rows.Scan(&e.ID, &e.UserID, &e.Description, &e.Duration, &e.Date); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
