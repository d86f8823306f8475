// Package models defines the domain entities of the HBnB service and the persistence interfaces they share.
//
// Entities:
//   - [State] : top-level region owning cities
//   - [City] : belongs to exactly one state, owns places
//   - [Amenity] : feature a place can offer (Wifi, Pool, ...)
//   - [Place] : rentable listing in a city, owned by a user, associated with amenities
//   - [User] : account owning places; the password is stored as a bcrypt hash
//
// All entities implement [Model], which provides identity, timestamps, validation,
// the serialized dict form returned by the API, and [Model.Apply] for partial updates.
//
// Updates are restricted to an explicit allow-list of mutable fields per entity (see [FieldSet]).
// Keys outside the list, including id, timestamps and foreign keys, are ignored.
//
// The [Repository] interface defines standard CRUD operations for database access.
package models
