// Package stream connects to an ArcGIS GeoEvent stream service over a
// websocket and turns every message into a tracking.Update.
//
// Each message is a feature in ArcGIS JSON: a point geometry plus an
// attributes object carrying id, name, lat, long, angle and tscore. Messages
// without an id, a score or a usable position are rejected by the codec and
// never reach the monitor.
package stream
