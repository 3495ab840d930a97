// internal/controller/contact_controller.go
package controller

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/clubops/annonce-backend/internal/csvdata"
	appErrors "github.com/clubops/annonce-backend/internal/errors"
	"github.com/clubops/annonce-backend/internal/model"
	"github.com/clubops/annonce-backend/internal/phone"
	"github.com/clubops/annonce-backend/internal/repository"
)

type ContactController struct {
	ContactRepo repository.ContactRepositoryInterface
}

func (c *ContactController) ListContacts(w http.ResponseWriter, r *http.Request) {
	contacts, err := c.ContactRepo.ListAll()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(contacts)
}

type contactBody struct {
	PhoneNumber string `json:"phone_number"`
	Email       string `json:"email"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	PostalCode  string `json:"postal_code"`
	BirthDate   string `json:"birth_date"`
}

// apply copies the request fields onto a contact, normalizing the phone number
// and birth date. Returns false when the phone number is unusable.
func (b contactBody) apply(contact *model.Contact) bool {
	normalized := phone.Normalize(b.PhoneNumber, phone.Local)
	if normalized == "" {
		return false
	}
	contact.PhoneNumber = normalized
	contact.Email = b.Email
	contact.FirstName = b.FirstName
	contact.LastName = b.LastName
	contact.PostalCode = csvdata.ExtractPostalCode(b.PostalCode)
	contact.BirthDate = nil
	if date := csvdata.ParseDate(b.BirthDate); date != "" {
		contact.BirthDate = &date
	}
	return true
}

func (c *ContactController) CreateContact(w http.ResponseWriter, r *http.Request) {
	var body contactBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}

	var contact model.Contact
	if !body.apply(&contact) {
		http.Error(w, "invalid phone number", http.StatusBadRequest)
		return
	}

	existing, err := c.ContactRepo.FindByPhone(contact.PhoneNumber)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if existing != nil {
		http.Error(w, "phone number already registered", http.StatusConflict)
		return
	}

	if err := c.ContactRepo.Create(&contact); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(contact)
}

func (c *ContactController) UpdateContact(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "id")
	id, _ := strconv.Atoi(idStr)

	var body contactBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}

	contact, err := c.ContactRepo.GetByID(id)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if contact == nil {
		http.Error(w, appErrors.NewContactNotFound(id).Error(), http.StatusNotFound)
		return
	}

	if !body.apply(contact) {
		http.Error(w, "invalid phone number", http.StatusBadRequest)
		return
	}

	// Another contact may already own the new phone number.
	existing, err := c.ContactRepo.FindByPhone(contact.PhoneNumber)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if existing != nil && existing.ID != contact.ID {
		http.Error(w, "phone number already registered", http.StatusConflict)
		return
	}

	if err := c.ContactRepo.Update(contact); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	json.NewEncoder(w).Encode(contact)
}

func (c *ContactController) DeleteContact(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "id")
	id, _ := strconv.Atoi(idStr)

	contact, err := c.ContactRepo.GetByID(id)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if contact == nil {
		http.Error(w, appErrors.NewContactNotFound(id).Error(), http.StatusNotFound)
		return
	}

	if err := c.ContactRepo.Delete(id); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
