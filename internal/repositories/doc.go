// Package repositories implements SQLite persistence for all domain entities.
//
// Each repository handles CRUD operations with atomic sequence generation for stable ordering.
// All repositories support soft deletes via deleted_at timestamps and exclude deleted records from queries.
//
// Key Implementations:
//   - [StateRepository] : states; deleting a state deletes its cities and their places
//   - [CityRepository] : cities, listed per state with [CityRepository.ListByState]
//   - [AmenityRepository] : amenities; deleting one unlinks it from every place
//   - [UserRepository] : user accounts with unique emails; deleting a user deletes their places
//   - [PlaceRepository] : places, listed per city, plus the place_amenity association
//
// [Store] bundles the repositories into the data-access handle passed to the server, CLI and TUI.
// It provides kind-based lookups ([Store.Get], [Store.All]) and [Store.Snapshot], which loads a
// consistent in-memory [search.Index] inside one transaction.
//
// Missing or soft-deleted records are reported with errors wrapping [shared.ErrNotFound].
package repositories
