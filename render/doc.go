// Package render is the rendering side of the monitor: it receives flight
// notifications and keeps one map marker per flight.
//
// Marker styling depends only on the selection flag: unselected flights use the
// blue plane symbol, the selected flight uses the larger red one. Symbols are
// rotated to the flight heading.
package render
