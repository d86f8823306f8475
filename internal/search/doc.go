// Package search implements the place search filter behind POST /api/v1/places_search.
//
// [Filter] narrows places in two steps:
//
//  1. Candidates: every place when no state or city ids are given; otherwise the places of the
//     cities of the requested states plus the directly requested cities, each city counted once.
//  2. Amenities: a candidate qualifies when its amenities contain every requested amenity.
//
// Ids that do not resolve are ignored, so the filter never fails; it only returns fewer places.
//
// The filter reads a [Catalog]. [Index] is the in-memory catalog loaded from one storage snapshot,
// which keeps a single call consistent and free of I/O.
package search
