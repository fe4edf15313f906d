package ports

import (
	"context"

	"github.com/soukly/marketplace-client/internal/core/domain"
)

// SignupInput carries the multipart signup form. Location is optional: when
// the device fix could not be acquired the coordinates are omitted from the
// request entirely.
type SignupInput struct {
	FirstName string `validate:"required"`
	LastName  string `validate:"required"`
	Email     string `validate:"required,email"`
	Password  string `validate:"required,min=6"`
	Phone     string `validate:"required"`
	Role      domain.Role
	Location  *domain.LocationFix
}

// AuthGateway is the unauthenticated slice of the backend: credential
// exchange and account creation.
type AuthGateway interface {
	// Login exchanges credentials for a session. A non-2xx response or a
	// malformed body is returned as an error without any retry.
	Login(ctx context.Context, email, password string) (domain.Session, error)
	Signup(ctx context.Context, in SignupInput) error
}
