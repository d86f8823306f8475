// package repositories provides persistence layer implementations for all model types.
//
// Each repository implements models.Repository[T] for a specific entity type,
// handling CRUD operations, soft deletes, and sequence generation.
package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/desertthunder/hbnb/internal/shared"
)

// queryer is satisfied by both [sql.DB] and [sql.Tx].
type queryer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// scanner is satisfied by both [sql.Row] and [sql.Rows].
type scanner interface {
	Scan(dest ...any) error
}

// NextSequence atomically increments and returns the next sequence number for the given table.
//
// It must run inside the transaction that inserts the row so a failed insert does not burn a number.
func NextSequence(ctx context.Context, tx *sql.Tx, table string) (int, error) {
	sequenceTable := table + "_sequence"

	if _, err := tx.ExecContext(ctx, fmt.Sprintf("UPDATE %s SET value = value + 1 WHERE id = 1", sequenceTable)); err != nil {
		return 0, fmt.Errorf("failed to increment sequence: %w", err)
	}

	var sequence int
	if err := tx.QueryRowContext(ctx, fmt.Sprintf("SELECT value FROM %s WHERE id = 1", sequenceTable)).Scan(&sequence); err != nil {
		return 0, fmt.Errorf("failed to get sequence value: %w", err)
	}

	return sequence, nil
}

// withTx runs fn in a transaction, committing when fn returns nil.
func withTx(ctx context.Context, db *sql.DB, fn func(tx *sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// queryAll runs query and scans every row with scan.
func queryAll[T any](ctx context.Context, q queryer, scan func(scanner) (T, error), query string, args ...any) ([]T, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query: %w", err)
	}
	defer rows.Close()

	var out []T
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return out, nil
}

// exists reports whether a live (not soft-deleted) row with id exists in table.
func exists(ctx context.Context, q queryer, table, id string) (bool, error) {
	var ok bool
	query := fmt.Sprintf("SELECT EXISTS(SELECT 1 FROM %s WHERE id = ? AND deleted_at IS NULL)", table)
	if err := q.QueryRowContext(ctx, query, id).Scan(&ok); err != nil {
		return false, fmt.Errorf("failed to check %s: %w", table, err)
	}
	return ok, nil
}

// requireLive returns an error wrapping [shared.ErrNotFound] when id is not a live row of table.
func requireLive(ctx context.Context, q queryer, table, kind, id string) error {
	ok, err := exists(ctx, q, table, id)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: %s %s", shared.ErrNotFound, kind, id)
	}
	return nil
}

// softDelete stamps deleted_at on a live row.
func softDelete(ctx context.Context, q queryer, table, kind, id string, now time.Time) error {
	query := fmt.Sprintf("UPDATE %s SET deleted_at = ? WHERE id = ? AND deleted_at IS NULL", table)
	result, err := q.ExecContext(ctx, query, now, id)
	if err != nil {
		return fmt.Errorf("failed to delete %s: %w", kind, err)
	}
	return expectAffected(result, kind, id)
}

// softDeletePlaces soft-deletes the live places matching column = value and drops their amenity links.
func softDeletePlaces(ctx context.Context, q queryer, column, value string, now time.Time) error {
	unlink := fmt.Sprintf(`
		DELETE FROM place_amenity
		WHERE place_id IN (SELECT id FROM places WHERE %s = ? AND deleted_at IS NULL)
	`, column)
	if _, err := q.ExecContext(ctx, unlink, value); err != nil {
		return fmt.Errorf("failed to unlink place amenities: %w", err)
	}

	query := fmt.Sprintf("UPDATE places SET deleted_at = ? WHERE %s = ? AND deleted_at IS NULL", column)
	if _, err := q.ExecContext(ctx, query, now, value); err != nil {
		return fmt.Errorf("failed to delete places: %w", err)
	}
	return nil
}

// count returns the number of live rows in table.
func count(db *sql.DB, table string) (int, error) {
	var n int
	if err := db.QueryRow(fmt.Sprintf("SELECT COUNT(*) FROM %s WHERE deleted_at IS NULL", table)).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count %s: %w", table, err)
	}
	return n, nil
}

func expectAffected(result sql.Result, kind, id string) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: %s %s not found or already deleted", shared.ErrNotFound, kind, id)
	}
	return nil
}

func notFound(err error, kind, id string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %s %s", shared.ErrNotFound, kind, id)
	}
	return fmt.Errorf("failed to query %s: %w", kind, err)
}

func nullTime(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time
	return &v
}
