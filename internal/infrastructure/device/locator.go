// Package device adapts host-provided device capabilities to the core ports.
package device

import (
	"context"
	"fmt"
	"strconv"

	"github.com/soukly/marketplace-client/internal/core/domain"
)

// StaticLocator reports the position injected through configuration, the way
// an emulator injects a mock GPS fix. Missing values behave like a denied
// location permission.
type StaticLocator struct {
	lat string
	lng string
}

func NewStaticLocator(lat, lng string) *StaticLocator {
	return &StaticLocator{lat: lat, lng: lng}
}

func (l *StaticLocator) CurrentLocation(ctx context.Context) (domain.LocationFix, error) {
	if l.lat == "" || l.lng == "" {
		return domain.LocationFix{}, domain.ErrLocationUnavailable
	}
	lat, err := strconv.ParseFloat(l.lat, 64)
	if err != nil {
		return domain.LocationFix{}, fmt.Errorf("%w: bad latitude %q", domain.ErrLocationUnavailable, l.lat)
	}
	lng, err := strconv.ParseFloat(l.lng, 64)
	if err != nil {
		return domain.LocationFix{}, fmt.Errorf("%w: bad longitude %q", domain.ErrLocationUnavailable, l.lng)
	}
	return domain.LocationFix{Latitude: lat, Longitude: lng}, nil
}
