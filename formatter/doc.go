// Package formatter provides response wrapping and serialization for
// leaderboard and flight snapshots.
//
// This package is organized into:
// - wrapper.go: Response wrapping (timestamps, ranks, selection)
// - json.go: JSON serialization
// - xml.go: XML serialization with proper escaping
// - geojson.go: GeoJSON feature collections of map markers
package formatter
