// internal/errors/errors.go
package appErrors

import (
	"fmt"
	"strings"

	"github.com/clubops/annonce-backend/internal/model"
)

// ErrInsufficientCredits aborts an announcement run before any provisioning:
// one credit buys one SMS, regardless of message length.
type ErrInsufficientCredits struct {
	Available float64
	Required  int
	Missing   int
}

func (e *ErrInsufficientCredits) Error() string {
	return fmt.Sprintf("insufficient SMS credits: %.0f available but %d required (1 credit = 1 SMS), %d missing; top up the provider account before retrying",
		e.Available, e.Required, e.Missing)
}

// Helper constructor
func NewInsufficientCredits(available float64, required int) error {
	return &ErrInsufficientCredits{
		Available: available,
		Required:  required,
		Missing:   required - int(available),
	}
}

// ErrNoContactsAdded means every contact in the batch failed to upsert, so
// there is nobody to send to.
type ErrNoContactsAdded struct {
	Failures []model.ContactError
}

func (e *ErrNoContactsAdded) Error() string {
	details := make([]string, len(e.Failures))
	for i, f := range e.Failures {
		details[i] = fmt.Sprintf("%s (%s): %s", f.Identity, f.Phone, f.Reason)
	}
	return "no contact could be added to the recipient list: " + strings.Join(details, "; ")
}

func NewNoContactsAdded(failures []model.ContactError) error {
	return &ErrNoContactsAdded{Failures: failures}
}

// ErrContactNotFound is a sentinel error
type ErrContactNotFound struct {
	ContactID int
}

func (e *ErrContactNotFound) Error() string {
	return fmt.Sprintf("contact with ID %d not found", e.ContactID)
}

func NewContactNotFound(id int) error {
	return &ErrContactNotFound{ContactID: id}
}
