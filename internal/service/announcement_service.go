// internal/service/announcement_service.go
package service

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/clubops/annonce-backend/internal/brevo"
	appErrors "github.com/clubops/annonce-backend/internal/errors"
	"github.com/clubops/annonce-backend/internal/model"
	"github.com/clubops/annonce-backend/internal/phone"
)

const (
	// providerPageSize matches Brevo's list pagination during cleanup.
	providerPageSize = 50
	// sendLeadTime is the provider's minimum scheduling offset.
	sendLeadTime = 2 * time.Minute
)

// AnnouncementService drives one bulk-SMS run against the provider:
// cleanup, credit check, folder/list provisioning, contact upserts, send.
// All provider calls are sequential; there is no retry.
type AnnouncementService struct {
	Provider brevo.API
	Sender   string // sender name shown on recipients' phones
}

// Credits returns the provider's current SMS credit balance.
func (s *AnnouncementService) Credits() (float64, error) {
	return s.Provider.GetSMSCredits()
}

// SendAnnouncement runs the full state machine for one batch. Cleanup
// failures are logged and ignored; an insufficient balance, a provisioning
// failure, or a batch where zero contacts could be upserted each abort the
// run with a typed error. Per-contact failures are collected on the run.
func (s *AnnouncementService) SendAnnouncement(contacts []model.Contact, message, campaignName string) (*model.AnnouncementRun, error) {
	run := &model.AnnouncementRun{
		RequiredCredits: len(contacts),
		ContactErrors:   []model.ContactError{},
	}

	s.cleanupProvider(contacts)

	credits, err := s.Provider.GetSMSCredits()
	if err != nil {
		return nil, fmt.Errorf("check credits: %w", err)
	}
	run.CreditsBefore = credits
	log.Printf("SMS credits available: %.0f, required: %d\n", credits, run.RequiredCredits)
	if credits < float64(run.RequiredCredits) {
		return nil, appErrors.NewInsufficientCredits(credits, run.RequiredCredits)
	}

	suffix := runSuffix()
	folderID, err := s.Provider.CreateFolder("Campagne SMS " + suffix)
	if err != nil {
		return nil, fmt.Errorf("create folder: %w", err)
	}
	run.FolderID = folderID

	listID, err := s.Provider.CreateList("Liste "+suffix, folderID)
	if err != nil {
		return nil, fmt.Errorf("create list: %w", err)
	}
	run.ListID = listID

	for _, contact := range contacts {
		if reason := s.upsertContact(contact, listID); reason != "" {
			run.ContactsFailed++
			run.ContactErrors = append(run.ContactErrors, model.ContactError{
				Identity: contactIdentity(contact),
				Phone:    contact.PhoneNumber,
				Reason:   reason,
			})
			continue
		}
		run.ContactsAdded++
	}
	log.Printf("Contacts added: %d, failed: %d\n", run.ContactsAdded, run.ContactsFailed)

	if run.ContactsAdded == 0 {
		return nil, appErrors.NewNoContactsAdded(run.ContactErrors)
	}

	if campaignName == "" {
		campaignName = "Campagne " + suffix
	}
	campaignID, err := s.Provider.CreateSMSCampaign(brevo.SMSCampaign{
		Name:           campaignName,
		Sender:         s.Sender,
		Content:        message,
		ListID:         listID,
		ScheduledAt:    time.Now().Add(sendLeadTime),
		UnicodeEnabled: true,
	})
	if err != nil {
		return nil, fmt.Errorf("create campaign: %w", err)
	}
	run.CampaignID = campaignID

	run.CreditsUsed = run.RequiredCredits
	run.CreditsRemaining = credits - float64(run.RequiredCredits)
	return run, nil
}

// upsertContact pushes one contact into the provider and onto the list.
// Email is the provider's contact key. Returns "" on success, otherwise the
// reason recorded in the run's per-contact errors.
func (s *AnnouncementService) upsertContact(contact model.Contact, listID int64) string {
	intlPhone := phone.Normalize(contact.PhoneNumber, phone.International)
	if intlPhone == "" {
		return "invalid phone number"
	}

	email := strings.TrimSpace(contact.Email)
	if email == "" {
		return "missing email, cannot create provider contact"
	}

	attrs := brevo.ContactAttributes{
		SMS:       intlPhone,
		FirstName: strings.TrimSpace(contact.FirstName),
		LastName:  strings.TrimSpace(contact.LastName),
	}

	existing, err := s.Provider.GetContact(email)
	if err != nil {
		return "contact lookup failed: " + err.Error()
	}
	if existing != nil {
		if err := s.Provider.UpdateContact(email, attrs); err != nil {
			return "contact update failed: " + err.Error()
		}
	} else {
		if err := s.Provider.CreateContact(email, attrs); err != nil {
			return "contact creation failed: " + err.Error()
		}
	}

	if err := s.Provider.AddContactsToList(listID, []string{email}); err != nil {
		return "add to list failed: " + err.Error()
	}
	return ""
}

// cleanupProvider wipes every provider-side SMS campaign and contact list,
// then deletes the batch's contacts by email. The account accrues orphaned
// resources from aborted runs; a clean slate avoids unbounded growth and
// naming collisions. The account must be dedicated to this tool: campaigns
// and lists created manually in the provider console are deleted too.
// Errors here never abort the run.
func (s *AnnouncementService) cleanupProvider(contacts []model.Contact) {
	s.cleanupCampaigns()
	s.cleanupLists()

	for _, contact := range contacts {
		email := strings.TrimSpace(contact.Email)
		if email == "" {
			continue
		}
		if err := s.Provider.DeleteContact(email); err != nil {
			log.Println("⚠️ cleanup: delete contact", email, ":", err)
		}
	}
}

func (s *AnnouncementService) cleanupCampaigns() {
	campaigns, err := s.Provider.ListSMSCampaigns(providerPageSize, 0)
	if err != nil {
		log.Println("⚠️ cleanup: list campaigns:", err)
		return
	}
	for _, campaign := range campaigns {
		if err := s.Provider.DeleteSMSCampaign(campaign.ID); err != nil {
			log.Println("⚠️ cleanup: delete campaign", campaign.ID, ":", err)
		}
	}
}

func (s *AnnouncementService) cleanupLists() {
	offset := 0
	for {
		lists, err := s.Provider.ListLists(providerPageSize, offset)
		if err != nil {
			log.Println("⚠️ cleanup: list lists:", err)
			return
		}
		if len(lists) == 0 {
			return
		}
		for _, list := range lists {
			if err := s.Provider.DeleteList(list.ID); err != nil {
				log.Println("⚠️ cleanup: delete list", list.ID, ":", err)
			}
		}
		if len(lists) < providerPageSize {
			return
		}
		offset += providerPageSize
	}
}

// runSuffix builds the unique tail shared by a run's folder, list and default
// campaign names.
func runSuffix() string {
	timestamp := time.Now().Format("2006-01-02 15-04-05")
	return timestamp + " " + uuid.NewString()[:8]
}

func contactIdentity(contact model.Contact) string {
	identity := strings.TrimSpace(strings.TrimSpace(contact.FirstName) + " " + strings.TrimSpace(contact.LastName))
	if identity == "" {
		return contact.Email
	}
	return identity
}
