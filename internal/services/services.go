// package services defines interface Service for talking to a running HBnB API
package services

import (
	"context"

	"github.com/desertthunder/hbnb/internal/search"
)

// Service is a client of the HBnB REST API.
type Service interface {
	// Status reports the "status" value of GET /status.
	Status(ctx context.Context) (string, error)

	// Stats returns the entity counts of GET /stats keyed by plural kind.
	Stats(ctx context.Context) (map[string]int, error)

	// SearchPlaces runs POST /places_search and returns the serialized places.
	SearchPlaces(ctx context.Context, q search.Query) ([]map[string]any, error)

	// Name returns a label for the endpoint, used in logs.
	Name() string
}
