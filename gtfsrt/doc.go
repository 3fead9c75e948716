// Package gtfsrt reads GTFS-Realtime VehiclePositions feeds as an alternative
// update source.
//
// Every vehicle in a feed becomes one tracking.Update: the vehicle id is the
// flight identity, the label its name, bearing its heading, and the score is
// taken from the odometer (kilometres) or the speed (km/h).
//
// The main type is Poller which fetches the feed on an interval and hands
// updates to the monitor in feed order.
package gtfsrt
