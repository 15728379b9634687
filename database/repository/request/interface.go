package request

import "bookly/models"

// RequestRepository manages the active and archived booking-request
// collections. Declined and blacklisted requests live in the archive;
// everything else stays active.
type RequestRepository interface {
	Active() ([]models.BookingRequest, error)
	Archived() ([]models.BookingRequest, error)
	SaveActive(requests []models.BookingRequest) error

	// GetByID searches the active collection only.
	GetByID(id string) (*models.BookingRequest, error)

	Append(req models.BookingRequest) error

	// Update replaces the active request with the same id.
	Update(req models.BookingRequest) error

	// Archive removes any archived copy with the same id, then appends.
	Archive(req models.BookingRequest) error

	// PurgeIdentity removes every request whose email, phone or id equals
	// key (case-insensitive) from both collections and reports how many
	// were removed.
	PurgeIdentity(key string) (int, error)
}
