package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/desertthunder/hbnb/internal/models"
	"github.com/desertthunder/hbnb/internal/shared"
)

const amenityColumns = "id, sequence, name, created_at, updated_at, deleted_at"

// AmenityRepository implements [models.Repository] for [models.Amenity] persistence.
type AmenityRepository struct {
	db *sql.DB
}

// NewAmenityRepository creates a new [AmenityRepository] with the given database connection
func NewAmenityRepository(db *sql.DB) *AmenityRepository {
	return &AmenityRepository{db: db}
}

// Create inserts a new amenity into the database with generated ID and sequence
func (r *AmenityRepository) Create(amenity *models.Amenity) error {
	if err := amenity.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	ctx := context.Background()
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		sequence, err := NextSequence(ctx, tx, "amenities")
		if err != nil {
			return fmt.Errorf("failed to generate sequence: %w", err)
		}

		id := shared.GenerateID()
		query := `
			INSERT INTO amenities (id, sequence, name, created_at, updated_at) VALUES (?, ?, ?, ?, ?)
		`
		if _, err := tx.ExecContext(ctx, query, id, sequence, amenity.Name(), amenity.CreatedAt(), amenity.UpdatedAt()); err != nil {
			return fmt.Errorf("failed to insert amenity: %w", err)
		}

		amenity.SetID(id)
		amenity.SetSequence(sequence)
		return nil
	})
}

// Get retrieves an amenity by ID, excluding soft-deleted amenities
func (r *AmenityRepository) Get(id string) (*models.Amenity, error) {
	query := "SELECT " + amenityColumns + " FROM amenities WHERE id = ? AND deleted_at IS NULL"

	amenity, err := scanAmenity(r.db.QueryRow(query, id))
	if err != nil {
		return nil, notFound(err, "amenity", id)
	}
	return amenity, nil
}

// Update writes the mutable fields of an existing amenity
func (r *AmenityRepository) Update(amenity *models.Amenity) error {
	if err := amenity.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	now := time.Now().UTC()
	result, err := r.db.Exec("UPDATE amenities SET name = ?, updated_at = ? WHERE id = ? AND deleted_at IS NULL", amenity.Name(), now, amenity.ID())
	if err != nil {
		return fmt.Errorf("failed to update amenity: %w", err)
	}
	if err := expectAffected(result, "amenity", amenity.ID()); err != nil {
		return err
	}

	amenity.SetUpdatedAt(now)
	return nil
}

// Delete soft-deletes an amenity and removes it from every place
func (r *AmenityRepository) Delete(id string) error {
	ctx := context.Background()
	now := time.Now().UTC()

	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		if err := softDelete(ctx, tx, "amenities", "amenity", id, now); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, "DELETE FROM place_amenity WHERE amenity_id = ?", id); err != nil {
			return fmt.Errorf("failed to unlink amenity: %w", err)
		}
		return nil
	})
}

// List retrieves all amenities matching the given criteria, excluding soft-deleted amenities
//
// Supported criteria: "name".
func (r *AmenityRepository) List(criteria map[string]any) ([]*models.Amenity, error) {
	query := "SELECT " + amenityColumns + " FROM amenities WHERE deleted_at IS NULL"
	args := []any{}

	if name, ok := criteria["name"].(string); ok && name != "" {
		query += " AND name = ?"
		args = append(args, name)
	}

	query += " ORDER BY sequence ASC"

	return r.list(context.Background(), r.db, query, args...)
}

// Count returns the number of live amenities
func (r *AmenityRepository) Count() (int, error) {
	return count(r.db, "amenities")
}

func (r *AmenityRepository) list(ctx context.Context, q queryer, query string, args ...any) ([]*models.Amenity, error) {
	amenities, err := queryAll(ctx, q, scanAmenity, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list amenities: %w", err)
	}
	return amenities, nil
}

func scanAmenity(row scanner) (*models.Amenity, error) {
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

	amenity := models.NewAmenity(sequence, name)
	amenity.SetID(id)
	amenity.SetCreatedAt(createdAt)
	amenity.SetUpdatedAt(updatedAt)
	amenity.SetDeletedAt(nullTime(deletedAt))
	return amenity, nil
}
