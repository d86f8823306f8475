// Package services implements [Service], an HTTP client for the HBnB REST API.
//
// # Raw Requests
//
// [APIService.Get], [APIService.Post], [APIService.Put] and [APIService.Delete] send a request relative to the
// API prefix and return an [APIResponse] holding the status, headers and body. JSON bodies are detected with gjson
// and decoded into JSONData.
//
// # Typed Calls
//
// Status, Stats and SearchPlaces wrap the raw requests and decode the fields they need. A non-2xx status becomes
// an error wrapping [shared.ErrAPIRequest] carrying the "error" message of the body.
package services
