package repository

import (
	"database/sql"
	"time"

	"github.com/lib/pq"

	"github.com/clubops/annonce-backend/internal/model"
)

// ContactRepositoryInterface defines methods used by services and controllers
type ContactRepositoryInterface interface {
	FindByPhone(phone string) (*model.Contact, error)
	GetByID(id int) (*model.Contact, error)
	FindByIDs(ids []int) ([]model.Contact, error)
	ListAll() ([]model.Contact, error)
	Create(c *model.Contact) error
	Update(c *model.Contact) error
	Delete(id int) error
}

// ContactRepository is the concrete implementation
type ContactRepository struct {
	DB *sql.DB
}

const contactColumns = `id, phone_number, email, first_name, last_name, postal_code, birth_date, created_at`

func scanContact(row interface{ Scan(...any) error }) (*model.Contact, error) {
	var c model.Contact
	var firstName, lastName, postalCode sql.NullString
	var birthDate sql.NullTime
	if err := row.Scan(&c.ID, &c.PhoneNumber, &c.Email, &firstName, &lastName, &postalCode, &birthDate, &c.CreatedAt); err != nil {
		return nil, err
	}
	c.FirstName = firstName.String
	c.LastName = lastName.String
	c.PostalCode = postalCode.String
	if birthDate.Valid {
		iso := birthDate.Time.Format("2006-01-02")
		c.BirthDate = &iso
	}
	return &c, nil
}

// FindByPhone fetches a contact by its canonical local phone number
func (r *ContactRepository) FindByPhone(phone string) (*model.Contact, error) {
	query := `
        SELECT ` + contactColumns + `
        FROM contacts
        WHERE phone_number = $1
    `
	c, err := scanContact(r.DB.QueryRow(query, phone))
	if err == sql.ErrNoRows {
		return nil, nil // not found
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

// GetByID fetches a contact by ID
func (r *ContactRepository) GetByID(id int) (*model.Contact, error) {
	query := `
        SELECT ` + contactColumns + `
        FROM contacts
        WHERE id = $1
    `
	c, err := scanContact(r.DB.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

// FindByIDs fetches the contacts selected in the dashboard for a campaign
func (r *ContactRepository) FindByIDs(ids []int) ([]model.Contact, error) {
	query := `
        SELECT ` + contactColumns + `
        FROM contacts
        WHERE id = ANY($1)
        ORDER BY id
    `
	rows, err := r.DB.Query(query, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectContacts(rows)
}

// ListAll fetches every contact for the dashboard table
func (r *ContactRepository) ListAll() ([]model.Contact, error) {
	query := `
        SELECT ` + contactColumns + `
        FROM contacts
        ORDER BY id
    `
	rows, err := r.DB.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectContacts(rows)
}

func collectContacts(rows *sql.Rows) ([]model.Contact, error) {
	contacts := []model.Contact{}
	for rows.Next() {
		c, err := scanContact(rows)
		if err != nil {
			return nil, err
		}
		contacts = append(contacts, *c)
	}
	return contacts, rows.Err()
}

// Create inserts a new contact and fills in its ID
func (r *ContactRepository) Create(c *model.Contact) error {
	c.CreatedAt = time.Now()
	query := `
        INSERT INTO contacts (phone_number, email, first_name, last_name, postal_code, birth_date, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING id
    `
	return r.DB.QueryRow(query,
		c.PhoneNumber, c.Email, c.FirstName, c.LastName, c.PostalCode, c.BirthDate, c.CreatedAt,
	).Scan(&c.ID)
}

// Update overwrites the mutable fields of a contact
func (r *ContactRepository) Update(c *model.Contact) error {
	query := `
        UPDATE contacts
        SET phone_number=$1, email=$2, first_name=$3, last_name=$4, postal_code=$5, birth_date=$6
        WHERE id=$7
    `
	_, err := r.DB.Exec(query,
		c.PhoneNumber, c.Email, c.FirstName, c.LastName, c.PostalCode, c.BirthDate, c.ID,
	)
	return err
}

// Delete removes a contact by ID
func (r *ContactRepository) Delete(id int) error {
	query := `DELETE FROM contacts WHERE id=$1`
	_, err := r.DB.Exec(query, id)
	return err
}
