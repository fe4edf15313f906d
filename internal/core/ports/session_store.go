package ports

import "github.com/soukly/marketplace-client/internal/core/domain"

// SessionStore is the on-device persistence boundary. It holds exactly two
// records: the serialized session and the last known cart id. Writes are
// rare (login, logout, cart load) so last-write-wins is acceptable.
//
// Read returns found=false both when nothing was ever saved and when the
// stored record could not be decoded; a decode failure must not surface as an
// error to callers (fail soft, log at the implementation).
type SessionStore interface {
	Save(session domain.Session) error
	Read() (session domain.Session, found bool, err error)
	Clear() error

	SaveCartID(cartID string) error
	ReadCartID() (cartID string, found bool, err error)
	ClearCartID() error
}
