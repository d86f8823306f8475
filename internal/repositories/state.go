package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/desertthunder/hbnb/internal/models"
	"github.com/desertthunder/hbnb/internal/shared"
)

const stateColumns = "id, sequence, name, created_at, updated_at, deleted_at"

// StateRepository implements [models.Repository] for [models.State] persistence.
type StateRepository struct {
	db *sql.DB
}

// NewStateRepository creates a new [StateRepository] with the given database connection
func NewStateRepository(db *sql.DB) *StateRepository {
	return &StateRepository{db: db}
}

// Create inserts a new state into the database with generated ID and sequence
func (r *StateRepository) Create(state *models.State) error {
	if err := state.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	ctx := context.Background()
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		sequence, err := NextSequence(ctx, tx, "states")
		if err != nil {
			return fmt.Errorf("failed to generate sequence: %w", err)
		}

		id := shared.GenerateID()
		query := `
			INSERT INTO states (id, sequence, name, created_at, updated_at) VALUES (?, ?, ?, ?, ?)
		`
		if _, err := tx.ExecContext(ctx, query, id, sequence, state.Name(), state.CreatedAt(), state.UpdatedAt()); err != nil {
			return fmt.Errorf("failed to insert state: %w", err)
		}

		state.SetID(id)
		state.SetSequence(sequence)
		return nil
	})
}

// Get retrieves a state by ID, excluding soft-deleted states
func (r *StateRepository) Get(id string) (*models.State, error) {
	query := "SELECT " + stateColumns + " FROM states WHERE id = ? AND deleted_at IS NULL"

	state, err := scanState(r.db.QueryRow(query, id))
	if err != nil {
		return nil, notFound(err, "state", id)
	}
	return state, nil
}

// Update writes the mutable fields of an existing state
func (r *StateRepository) Update(state *models.State) error {
	if err := state.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	now := time.Now().UTC()
	query := `
		UPDATE states
		SET name = ?, updated_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`

	result, err := r.db.Exec(query, state.Name(), now, state.ID())
	if err != nil {
		return fmt.Errorf("failed to update state: %w", err)
	}
	if err := expectAffected(result, "state", state.ID()); err != nil {
		return err
	}

	state.SetUpdatedAt(now)
	return nil
}

// Delete soft-deletes a state together with its cities and their places
func (r *StateRepository) Delete(id string) error {
	ctx := context.Background()
	now := time.Now().UTC()

	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		if err := softDelete(ctx, tx, "states", "state", id, now); err != nil {
			return err
		}

		places := `
			DELETE FROM place_amenity WHERE place_id IN (
				SELECT p.id FROM places p JOIN cities c ON c.id = p.city_id
				WHERE c.state_id = ? AND p.deleted_at IS NULL
			)
		`
		if _, err := tx.ExecContext(ctx, places, id); err != nil {
			return fmt.Errorf("failed to unlink place amenities: %w", err)
		}

		query := `
			UPDATE places SET deleted_at = ?
			WHERE deleted_at IS NULL AND city_id IN (SELECT id FROM cities WHERE state_id = ?)
		`
		if _, err := tx.ExecContext(ctx, query, now, id); err != nil {
			return fmt.Errorf("failed to delete places: %w", err)
		}

		if _, err := tx.ExecContext(ctx, "UPDATE cities SET deleted_at = ? WHERE state_id = ? AND deleted_at IS NULL", now, id); err != nil {
			return fmt.Errorf("failed to delete cities: %w", err)
		}
		return nil
	})
}

// List retrieves all states matching the given criteria, excluding soft-deleted states
//
// Supported criteria: "name" (exact match).
func (r *StateRepository) List(criteria map[string]any) ([]*models.State, error) {
	query := "SELECT " + stateColumns + " FROM states WHERE deleted_at IS NULL"
	args := []any{}

	if name, ok := criteria["name"].(string); ok && name != "" {
		query += " AND name = ?"
		args = append(args, name)
	}

	query += " ORDER BY sequence ASC"

	return r.list(context.Background(), r.db, query, args...)
}

// Count returns the number of live states
func (r *StateRepository) Count() (int, error) {
	return count(r.db, "states")
}

func (r *StateRepository) list(ctx context.Context, q queryer, query string, args ...any) ([]*models.State, error) {
	states, err := queryAll(ctx, q, scanState, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list states: %w", err)
	}
	return states, nil
}

func scanState(row scanner) (*models.State, error) {
	var (
		id        string
		sequence  int
		name      string
		createdAt time.Time
		updatedAt time.Time
		deletedAt sql.NullTime
	)

	if err := row.Scan(&id, &sequence, &name, &createdAt, &updatedAt, &deletedAt); err != nil {
		return nil, err
	}

	state := models.NewState(sequence, name)
	state.SetID(id)
	state.SetCreatedAt(createdAt)
	state.SetUpdatedAt(updatedAt)
	state.SetDeletedAt(nullTime(deletedAt))
	return state, nil
}
