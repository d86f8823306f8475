package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/desertthunder/hbnb/internal/models"
	"github.com/desertthunder/hbnb/internal/shared"
)

const placeColumns = `id, sequence, city_id, user_id, name, description, number_rooms, number_bathrooms,
	max_guest, price_by_night, latitude, longitude, created_at, updated_at, deleted_at`

// PlaceRepository implements [models.Repository] for [models.Place] persistence and
// manages the place_amenity association.
type PlaceRepository struct {
	db *sql.DB
}

// NewPlaceRepository creates a new [PlaceRepository] with the given database connection
func NewPlaceRepository(db *sql.DB) *PlaceRepository {
	return &PlaceRepository{db: db}
}

// Create inserts a new place. Its city and owning user must exist.
func (r *PlaceRepository) Create(place *models.Place) error {
	if err := place.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	ctx := context.Background()
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		if err := requireLive(ctx, tx, "cities", "city", place.CityID()); err != nil {
			return err
		}
		if err := requireLive(ctx, tx, "users", "user", place.UserID()); err != nil {
			return err
		}

		sequence, err := NextSequence(ctx, tx, "places")
		if err != nil {
			return fmt.Errorf("failed to generate sequence: %w", err)
		}

		id := shared.GenerateID()
		a := place.Attrs()
		query := `
			INSERT INTO places (id, sequence, city_id, user_id, name, description, number_rooms, number_bathrooms,
				max_guest, price_by_night, latitude, longitude, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`
		_, err = tx.ExecContext(ctx, query, id, sequence, place.CityID(), place.UserID(), a.Name, a.Description,
			a.NumberRooms, a.NumberBathrooms, a.MaxGuest, a.PriceByNight, nullFloat(a.Latitude), nullFloat(a.Longitude),
			place.CreatedAt(), place.UpdatedAt())
		if err != nil {
			return fmt.Errorf("failed to insert place: %w", err)
		}

		place.SetID(id)
		place.SetSequence(sequence)
		return nil
	})
}

// Get retrieves a place by ID, excluding soft-deleted places
func (r *PlaceRepository) Get(id string) (*models.Place, error) {
	query := "SELECT " + placeColumns + " FROM places WHERE id = ? AND deleted_at IS NULL"

	place, err := scanPlace(r.db.QueryRow(query, id))
	if err != nil {
		return nil, notFound(err, "place", id)
	}
	return place, nil
}

// Update writes the descriptive attributes of an existing place.
// City and owner are fixed at creation.
func (r *PlaceRepository) Update(place *models.Place) error {
	if err := place.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	now := time.Now().UTC()
	a := place.Attrs()
	query := `
		UPDATE places SET name = ?, description = ?, number_rooms = ?, number_bathrooms = ?, max_guest = ?,
			price_by_night = ?, latitude = ?, longitude = ?, updated_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`
	result, err := r.db.Exec(query, a.Name, a.Description, a.NumberRooms, a.NumberBathrooms, a.MaxGuest,
		a.PriceByNight, nullFloat(a.Latitude), nullFloat(a.Longitude), now, place.ID())
	if err != nil {
		return fmt.Errorf("failed to update place: %w", err)
	}
	if err := expectAffected(result, "place", place.ID()); err != nil {
		return err
	}

	place.SetUpdatedAt(now)
	return nil
}

// Delete soft-deletes a place and drops its amenity links
func (r *PlaceRepository) Delete(id string) error {
	ctx := context.Background()
	now := time.Now().UTC()

	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		if err := softDelete(ctx, tx, "places", "place", id, now); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, "DELETE FROM place_amenity WHERE place_id = ?", id); err != nil {
			return fmt.Errorf("failed to unlink place amenities: %w", err)
		}
		return nil
	})
}

// List retrieves all places matching the given criteria, excluding soft-deleted places
//
// Supported criteria: "city_id", "user_id", "name".
func (r *PlaceRepository) List(criteria map[string]any) ([]*models.Place, error) {
	query := "SELECT " + placeColumns + " FROM places WHERE deleted_at IS NULL"
	args := []any{}

	for _, column := range []string{"city_id", "user_id", "name"} {
		if v, ok := criteria[column].(string); ok && v != "" {
			query += " AND " + column + " = ?"
			args = append(args, v)
		}
	}

	query += " ORDER BY sequence ASC"

	return r.list(context.Background(), r.db, query, args...)
}

// ListByCity returns the places of a city. A missing city is reported as not found.
func (r *PlaceRepository) ListByCity(cityID string) ([]*models.Place, error) {
	if err := requireLive(context.Background(), r.db, "cities", "city", cityID); err != nil {
		return nil, err
	}
	return r.List(map[string]any{"city_id": cityID})
}

// Count returns the number of live places
func (r *PlaceRepository) Count() (int, error) {
	return count(r.db, "places")
}

// Amenities returns the live amenities linked to a place, in amenity sequence order.
func (r *PlaceRepository) Amenities(placeID string) ([]*models.Amenity, error) {
	ctx := context.Background()
	if err := requireLive(ctx, r.db, "places", "place", placeID); err != nil {
		return nil, err
	}

	query := `
		SELECT a.id, a.sequence, a.name, a.created_at, a.updated_at, a.deleted_at
		FROM amenities a
		JOIN place_amenity pa ON pa.amenity_id = a.id
		WHERE pa.place_id = ? AND a.deleted_at IS NULL
		ORDER BY a.sequence ASC
	`
	amenities, err := queryAll(ctx, r.db, scanAmenity, query, placeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list place amenities: %w", err)
	}
	return amenities, nil
}

// LinkAmenity associates an amenity with a place. It reports false when the link already existed.
func (r *PlaceRepository) LinkAmenity(placeID, amenityID string) (bool, error) {
	ctx := context.Background()
	var created bool

	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		if err := requireLive(ctx, tx, "places", "place", placeID); err != nil {
			return err
		}
		if err := requireLive(ctx, tx, "amenities", "amenity", amenityID); err != nil {
			return err
		}

		result, err := tx.ExecContext(ctx,
			"INSERT OR IGNORE INTO place_amenity (place_id, amenity_id) VALUES (?, ?)", placeID, amenityID)
		if err != nil {
			return fmt.Errorf("failed to link amenity: %w", err)
		}
		n, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to get affected rows: %w", err)
		}
		created = n > 0
		return nil
	})
	return created, err
}

// UnlinkAmenity removes an amenity from a place.
// It returns an error wrapping [shared.ErrNotLinked] when the two were not associated.
func (r *PlaceRepository) UnlinkAmenity(placeID, amenityID string) error {
	ctx := context.Background()

	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		if err := requireLive(ctx, tx, "places", "place", placeID); err != nil {
			return err
		}
		if err := requireLive(ctx, tx, "amenities", "amenity", amenityID); err != nil {
			return err
		}

		result, err := tx.ExecContext(ctx,
			"DELETE FROM place_amenity WHERE place_id = ? AND amenity_id = ?", placeID, amenityID)
		if err != nil {
			return fmt.Errorf("failed to unlink amenity: %w", err)
		}
		n, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to get affected rows: %w", err)
		}
		if n == 0 {
			return fmt.Errorf("%w: amenity %s on place %s", shared.ErrNotLinked, amenityID, placeID)
		}
		return nil
	})
}

// HasAmenity reports whether a place is linked to an amenity
func (r *PlaceRepository) HasAmenity(placeID, amenityID string) (bool, error) {
	var ok bool
	query := "SELECT EXISTS(SELECT 1 FROM place_amenity WHERE place_id = ? AND amenity_id = ?)"
	if err := r.db.QueryRow(query, placeID, amenityID).Scan(&ok); err != nil {
		return false, fmt.Errorf("failed to check place amenity: %w", err)
	}
	return ok, nil
}

func (r *PlaceRepository) list(ctx context.Context, q queryer, query string, args ...any) ([]*models.Place, error) {
	places, err := queryAll(ctx, q, scanPlace, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list places: %w", err)
	}
	return places, nil
}

func scanPlace(row scanner) (*models.Place, error) {
	var (
		id        string
		sequence  int
		cityID    string
		userID    string
		a         models.PlaceAttrs
		lat, lon  sql.NullFloat64
		createdAt time.Time
		updatedAt time.Time
		deletedAt sql.NullTime
	)

	err := row.Scan(&id, &sequence, &cityID, &userID, &a.Name, &a.Description, &a.NumberRooms, &a.NumberBathrooms,
		&a.MaxGuest, &a.PriceByNight, &lat, &lon, &createdAt, &updatedAt, &deletedAt)
	if err != nil {
		return nil, err
	}

	a.Latitude = floatPtr(lat)
	a.Longitude = floatPtr(lon)

	place := models.NewPlace(sequence, cityID, userID, a)
	place.SetID(id)
	place.SetCreatedAt(createdAt)
	place.SetUpdatedAt(updatedAt)
	place.SetDeletedAt(nullTime(deletedAt))
	return place, nil
}

func nullFloat(f *float64) sql.NullFloat64 {
	if f == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *f, Valid: true}
}

func floatPtr(f sql.NullFloat64) *float64 {
	if !f.Valid {
		return nil
	}
	v := f.Float64
	return &v
}
