package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/desertthunder/hbnb/internal/models"
	"github.com/desertthunder/hbnb/internal/shared"
)

const cityColumns = "id, sequence, state_id, name, created_at, updated_at, deleted_at"

// CityRepository implements [models.Repository] for [models.City] persistence.
type CityRepository struct {
	db *sql.DB
}

// NewCityRepository creates a new [CityRepository] with the given database connection
func NewCityRepository(db *sql.DB) *CityRepository {
	return &CityRepository{db: db}
}

// Create inserts a new city into the database. The owning state must exist.
func (r *CityRepository) Create(city *models.City) error {
	if err := city.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	ctx := context.Background()
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		if err := requireLive(ctx, tx, "states", "state", city.StateID()); err != nil {
			return err
		}

		sequence, err := NextSequence(ctx, tx, "cities")
		if err != nil {
			return fmt.Errorf("failed to generate sequence: %w", err)
		}

		id := shared.GenerateID()
		query := `
			INSERT INTO cities (id, sequence, state_id, name, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)
		`
		_, err = tx.ExecContext(ctx, query, id, sequence, city.StateID(), city.Name(), city.CreatedAt(), city.UpdatedAt())
		if err != nil {
			return fmt.Errorf("failed to insert city: %w", err)
		}

		city.SetID(id)
		city.SetSequence(sequence)
		return nil
	})
}

// Get retrieves a city by ID, excluding soft-deleted cities
func (r *CityRepository) Get(id string) (*models.City, error) {
	query := "SELECT " + cityColumns + " FROM cities WHERE id = ? AND deleted_at IS NULL"

	city, err := scanCity(r.db.QueryRow(query, id))
	if err != nil {
		return nil, notFound(err, "city", id)
	}
	return city, nil
}

// Update writes the mutable fields of an existing city
func (r *CityRepository) Update(city *models.City) error {
	if err := city.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	now := time.Now().UTC()
	result, err := r.db.Exec("UPDATE cities SET name = ?, updated_at = ? WHERE id = ? AND deleted_at IS NULL", city.Name(), now, city.ID())
	if err != nil {
		return fmt.Errorf("failed to update city: %w", err)
	}
	if err := expectAffected(result, "city", city.ID()); err != nil {
		return err
	}

	city.SetUpdatedAt(now)
	return nil
}

// Delete soft-deletes a city and its places
func (r *CityRepository) Delete(id string) error {
	ctx := context.Background()
	now := time.Now().UTC()

	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		if err := softDelete(ctx, tx, "cities", "city", id, now); err != nil {
			return err
		}
		return softDeletePlaces(ctx, tx, "city_id", id, now)
	})
}

// List retrieves all cities matching the given criteria, excluding soft-deleted cities
//
// Supported criteria: "state_id", "name".
func (r *CityRepository) List(criteria map[string]any) ([]*models.City, error) {
	query := "SELECT " + cityColumns + " FROM cities WHERE deleted_at IS NULL"
	args := []any{}

	if stateID, ok := criteria["state_id"].(string); ok && stateID != "" {
		query += " AND state_id = ?"
		args = append(args, stateID)
	}
	if name, ok := criteria["name"].(string); ok && name != "" {
		query += " AND name = ?"
		args = append(args, name)
	}

	query += " ORDER BY sequence ASC"

	return r.list(context.Background(), r.db, query, args...)
}

// ListByState returns the cities of a state. A missing state is reported as not found.
func (r *CityRepository) ListByState(stateID string) ([]*models.City, error) {
	if err := requireLive(context.Background(), r.db, "states", "state", stateID); err != nil {
		return nil, err
	}
	return r.List(map[string]any{"state_id": stateID})
}

// Count returns the number of live cities
func (r *CityRepository) Count() (int, error) {
	return count(r.db, "cities")
}

func (r *CityRepository) list(ctx context.Context, q queryer, query string, args ...any) ([]*models.City, error) {
	cities, err := queryAll(ctx, q, scanCity, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list cities: %w", err)
	}
	return cities, nil
}

func scanCity(row scanner) (*models.City, error) {
	var (
		id        string
		sequence  int
		stateID   string
		name      string
		createdAt time.Time
		updatedAt time.Time
		deletedAt sql.NullTime
	)

	if err := row.Scan(&id, &sequence, &stateID, &name, &createdAt, &updatedAt, &deletedAt); err != nil {
		return nil, err
	}

	city := models.NewCity(sequence, stateID, name)
	city.SetID(id)
	city.SetCreatedAt(createdAt)
	city.SetUpdatedAt(updatedAt)
	city.SetDeletedAt(nullTime(deletedAt))
	return city, nil
}
