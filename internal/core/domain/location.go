package domain

import "errors"

var ErrLocationUnavailable = errors.New("device location unavailable")

// LocationFix is the device position acquired once at startup and read-only
// for the remainder of the process lifetime.
type LocationFix struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}
