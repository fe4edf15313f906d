package ports

import (
	"context"

	"github.com/soukly/marketplace-client/internal/core/domain"
)

// Locator abstracts the device positioning hardware. Implementations return
// domain.ErrLocationUnavailable when permission is denied or no fix exists.
type Locator interface {
	CurrentLocation(ctx context.Context) (domain.LocationFix, error)
}
