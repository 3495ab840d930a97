// internal/controller/announcement_controller.go
package controller

import (
	"encoding/json"
	"errors"
	"net/http"

	appErrors "github.com/clubops/annonce-backend/internal/errors"
	"github.com/clubops/annonce-backend/internal/repository"
	"github.com/clubops/annonce-backend/internal/service"
)

type AnnouncementController struct {
	ContactRepo         repository.ContactRepositoryInterface
	AnnouncementService *service.AnnouncementService
}

func (c *AnnouncementController) GetCredits(w http.ResponseWriter, r *http.Request) {
	credits, err := c.AnnouncementService.Credits()
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}
	json.NewEncoder(w).Encode(map[string]interface{}{
		"credits": credits,
	})
}

func (c *AnnouncementController) SendSMS(w http.ResponseWriter, r *http.Request) {
	var body struct {
		ContactIDs   []int  `json:"contact_ids"`
		Text         string `json:"text"`
		CampaignName string `json:"campaign_name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}
	if body.Text == "" {
		http.Error(w, "text is required", http.StatusBadRequest)
		return
	}
	if len(body.ContactIDs) == 0 {
		http.Error(w, "contact_ids is required", http.StatusBadRequest)
		return
	}

	contacts, err := c.ContactRepo.FindByIDs(body.ContactIDs)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if len(contacts) == 0 {
		http.Error(w, "no matching contacts", http.StatusNotFound)
		return
	}

	run, err := c.AnnouncementService.SendAnnouncement(contacts, body.Text, body.CampaignName)
	if err != nil {
		var insufficient *appErrors.ErrInsufficientCredits
		if errors.As(err, &insufficient) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusPaymentRequired)
			json.NewEncoder(w).Encode(map[string]interface{}{
				"error":           insufficient.Error(),
				"credits":         insufficient.Available,
				"required":        insufficient.Required,
				"missing_credits": insufficient.Missing,
			})
			return
		}
		var noneAdded *appErrors.ErrNoContactsAdded
		if errors.As(err, &noneAdded) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnprocessableEntity)
			json.NewEncoder(w).Encode(map[string]interface{}{
				"error":          noneAdded.Error(),
				"contact_errors": noneAdded.Failures,
			})
			return
		}
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}

	json.NewEncoder(w).Encode(run)
}
