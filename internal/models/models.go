// package models defines the data model for the HBnB service
package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/desertthunder/hbnb/internal/shared"
)

// TimeFormat is the layout used for created_at/updated_at in serialized records.
const TimeFormat = "2006-01-02T15:04:05.000000"

// Kind names an entity type. The value doubles as the "__class__" of a serialized record.
type Kind string

const (
	KindState   Kind = "State"
	KindCity    Kind = "City"
	KindAmenity Kind = "Amenity"
	KindPlace   Kind = "Place"
	KindUser    Kind = "User"
)

// Kinds lists every entity kind in dependency order.
var Kinds = []Kind{KindState, KindCity, KindAmenity, KindUser, KindPlace}

// ParseKind resolves a kind from its class name or its singular/plural lowercase form.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "state", "states":
		return KindState, nil
	case "city", "cities":
		return KindCity, nil
	case "amenity", "amenities":
		return KindAmenity, nil
	case "place", "places":
		return KindPlace, nil
	case "user", "users":
		return KindUser, nil
	}
	return "", fmt.Errorf("%w: %q", shared.ErrUnknownKind, s)
}

// Plural returns the collection name used by the stats endpoint.
func (k Kind) Plural() string {
	switch k {
	case KindCity:
		return "cities"
	case KindAmenity:
		return "amenities"
	}
	return strings.ToLower(string(k)) + "s"
}

// Model defines the base interface for all persistent models in the HBnB service.
type Model interface {
	ID() string                         // ID returns the unique identifier for this model
	Kind() Kind                         // Kind returns the entity type
	CreatedAt() time.Time               // CreatedAt returns when this model was created
	UpdatedAt() time.Time               // UpdatedAt returns when this model was last updated
	Validate() error                    // Validate checks if the model's data is valid and returns an error if not
	Dict() map[string]any               // Dict returns the serialized form of the model
	Apply(updates map[string]any) error // Apply sets allow-listed fields from decoded JSON values
}

// Repository defines the interface for data access operations.
// Implementations handle database interactions for specific model types.
type Repository[T Model] interface {
	Create(model T) error                      // Create inserts a new model into the database
	Get(id string) (T, error)                  // Get retrieves a model by its ID
	Update(model T) error                      // Update modifies an existing model in the database
	Delete(id string) error                    // Delete removes a model from the database by its ID
	List(criteria map[string]any) ([]T, error) // List retrieves all models matching the given criteria
}

// base carries identity, ordering and lifecycle timestamps shared by every entity.
type base struct {
	id        string
	sequence  int
	createdAt time.Time
	updatedAt time.Time
	deletedAt *time.Time
}

func newBase(sequence int) base {
	now := time.Now().UTC()
	return base{sequence: sequence, createdAt: now, updatedAt: now}
}

func (b *base) ID() string                { return b.id }
func (b *base) Sequence() int             { return b.sequence }
func (b *base) CreatedAt() time.Time      { return b.createdAt }
func (b *base) UpdatedAt() time.Time      { return b.updatedAt }
func (b *base) DeletedAt() *time.Time     { return b.deletedAt }
func (b *base) IsDeleted() bool           { return b.deletedAt != nil }
func (b *base) SetID(id string)           { b.id = id }
func (b *base) SetSequence(seq int)       { b.sequence = seq }
func (b *base) SetCreatedAt(t time.Time)  { b.createdAt = t }
func (b *base) SetUpdatedAt(t time.Time)  { b.updatedAt = t }
func (b *base) SetDeletedAt(t *time.Time) { b.deletedAt = t }

func (b *base) dict(kind Kind) map[string]any {
	return map[string]any{
		"id":         b.id,
		"created_at": b.createdAt.UTC().Format(TimeFormat),
		"updated_at": b.updatedAt.UTC().Format(TimeFormat),
		"__class__":  string(kind),
	}
}

func requireField(name, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%w: %s", shared.ErrMissingField, name)
	}
	return nil
}
