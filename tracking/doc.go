// Package tracking holds the live registry of tracked flights.
//
// This package handles:
// - Resolving an incoming update to a new or an existing flight by its id
// - Refreshing position, heading and score of existing flights in place
// - Carrying the selection flag used to highlight one flight
//
// The Registry is not safe for concurrent use on its own; the owning monitor
// serializes every call behind a single lock.
package tracking
