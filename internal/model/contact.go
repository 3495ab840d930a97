// internal/model/contact.go
package model

import "time"

// Contact is a stored person: the unit of dashboard management and SMS targeting.
// PhoneNumber is kept in canonical local format (0XXXXXXXXX) and is unique.
type Contact struct {
	ID          int       `db:"id" json:"id"`
	PhoneNumber string    `db:"phone_number" json:"phone_number"`
	Email       string    `db:"email" json:"email"`
	FirstName   string    `db:"first_name" json:"first_name"`
	LastName    string    `db:"last_name" json:"last_name"`
	PostalCode  string    `db:"postal_code" json:"postal_code"`
	BirthDate   *string   `db:"birth_date" json:"birth_date,omitempty"` // YYYY-MM-DD
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}
