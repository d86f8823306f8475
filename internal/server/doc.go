// Package server provides HTTP routing, middleware and the HBnB handlers.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
//
// [Middleware] wraps handlers in reverse order (last added executes first), following the standard Go pattern.
//
// The [BasicRouter] implementation uses gorilla/mux internally with method matching, so path variables
// such as {state_id} are read with mux.Vars. Trailing slashes are ignored.
//
// # Handlers
//
// Handlers implement the [Handler] interface and return their own [Route] table.
//
// [API] serves the JSON endpoints under [APIPrefix]: CRUD for states, cities, amenities, users and places,
// place/amenity links, counts per kind, and places_search. Errors are JSON objects with a single
// "error" key; lookups that miss answer 404 {"error": "Not found"} and bodies that are not JSON objects
// answer 400 {"error": "Not a JSON"}.
//
// [Page] renders /hbnb, an HTML page of states with their cities, amenities and places, sorted by name.
//
// # Middleware
//
//   - [Recover] turns panics into 500 responses
//   - [Logging] writes one log line per request
//   - [Metrics] counts requests by route template and exposes them at /metrics
//   - [RateLimiter] applies a global token bucket
package server
