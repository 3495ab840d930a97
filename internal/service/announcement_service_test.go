package service_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/clubops/annonce-backend/internal/brevo"
	appErrors "github.com/clubops/annonce-backend/internal/errors"
	"github.com/clubops/annonce-backend/internal/model"
	"github.com/clubops/annonce-backend/internal/service"
)

// fakeProvider simulates the Brevo API and records every mutating call.
type fakeProvider struct {
	credits          float64
	existingContacts map[string]bool // emails already known to the provider
	staleCampaigns   []brevo.Resource
	staleLists       []brevo.Resource

	foldersCreated   []string
	listsCreated     []string
	created          []string
	updated          []string
	addedToList      []string
	deletedContacts  []string
	deletedCampaigns []int64
	deletedLists     []int64
	campaigns        []brevo.SMSCampaign

	failCreateContact bool
}

func newFakeProvider(credits float64) *fakeProvider {
	return &fakeProvider{credits: credits, existingContacts: map[string]bool{}}
}

func (f *fakeProvider) GetSMSCredits() (float64, error) { return f.credits, nil }

func (f *fakeProvider) CreateFolder(name string) (int64, error) {
	f.foldersCreated = append(f.foldersCreated, name)
	return 10, nil
}

func (f *fakeProvider) CreateList(name string, folderID int64) (int64, error) {
	f.listsCreated = append(f.listsCreated, name)
	return 20, nil
}

func (f *fakeProvider) GetContact(email string) (*brevo.Contact, error) {
	if f.existingContacts[email] {
		return &brevo.Contact{ID: 1, Email: email}, nil
	}
	return nil, nil
}

func (f *fakeProvider) CreateContact(email string, attrs brevo.ContactAttributes) error {
	if f.failCreateContact {
		return fmt.Errorf("simulated provider failure")
	}
	f.created = append(f.created, email)
	return nil
}

func (f *fakeProvider) UpdateContact(email string, attrs brevo.ContactAttributes) error {
	f.updated = append(f.updated, email)
	return nil
}

func (f *fakeProvider) DeleteContact(email string) error {
	f.deletedContacts = append(f.deletedContacts, email)
	return nil
}

func (f *fakeProvider) AddContactsToList(listID int64, emails []string) error {
	f.addedToList = append(f.addedToList, emails...)
	return nil
}

func (f *fakeProvider) CreateSMSCampaign(campaign brevo.SMSCampaign) (int64, error) {
	f.campaigns = append(f.campaigns, campaign)
	return 30, nil
}

func (f *fakeProvider) ListSMSCampaigns(limit, offset int) ([]brevo.Resource, error) {
	if offset > 0 {
		return nil, nil
	}
	return f.staleCampaigns, nil
}

func (f *fakeProvider) DeleteSMSCampaign(id int64) error {
	f.deletedCampaigns = append(f.deletedCampaigns, id)
	return nil
}

func (f *fakeProvider) ListLists(limit, offset int) ([]brevo.Resource, error) {
	if offset > 0 {
		return nil, nil
	}
	return f.staleLists, nil
}

func (f *fakeProvider) DeleteList(id int64) error {
	f.deletedLists = append(f.deletedLists, id)
	return nil
}

func batch(n int) []model.Contact {
	contacts := make([]model.Contact, n)
	for i := range contacts {
		contacts[i] = model.Contact{
			ID:          i + 1,
			PhoneNumber: fmt.Sprintf("06123456%02d", i),
			Email:       fmt.Sprintf("contact%d@example.com", i),
			FirstName:   fmt.Sprintf("Prenom%d", i),
			LastName:    "Test",
		}
	}
	return contacts
}

func TestSendAnnouncementInsufficientCredits(t *testing.T) {
	provider := newFakeProvider(3)
	svc := &service.AnnouncementService{Provider: provider, Sender: "Nightclub"}

	_, err := svc.SendAnnouncement(batch(5), "Ce soir!", "")
	if err == nil {
		t.Fatal("expected insufficient-credits error")
	}

	var insufficient *appErrors.ErrInsufficientCredits
	if !errors.As(err, &insufficient) {
		t.Fatalf("wrong error type: %v", err)
	}
	if insufficient.Missing != 2 {
		t.Errorf("missing = %d, want 2", insufficient.Missing)
	}

	// The credit gate must fire before any provisioning.
	if len(provider.foldersCreated) != 0 || len(provider.listsCreated) != 0 {
		t.Errorf("provisioning happened despite failed credit check: folders=%v lists=%v",
			provider.foldersCreated, provider.listsCreated)
	}
}

func TestSendAnnouncementPartialFailure(t *testing.T) {
	provider := newFakeProvider(10)
	contacts := batch(5)
	contacts[1].Email = ""
	contacts[3].Email = "   "

	svc := &service.AnnouncementService{Provider: provider, Sender: "Nightclub"}
	run, err := svc.SendAnnouncement(contacts, "Entrée gratuite avant minuit", "Samedi")
	if err != nil {
		t.Fatalf("SendAnnouncement: %v", err)
	}

	if run.ContactsAdded != 3 {
		t.Errorf("contactsAdded = %d, want 3", run.ContactsAdded)
	}
	if run.ContactsFailed != 2 {
		t.Errorf("contactsFailed = %d, want 2", run.ContactsFailed)
	}
	if len(run.ContactErrors) != 2 {
		t.Errorf("contactErrors = %d entries, want 2", len(run.ContactErrors))
	}
	if run.CampaignID != 30 || run.ListID != 20 || run.FolderID != 10 {
		t.Errorf("unexpected provider ids on run: %+v", run)
	}
	if run.CreditsBefore != 10 || run.CreditsUsed != 5 || run.CreditsRemaining != 5 {
		t.Errorf("unexpected credit summary: %+v", run)
	}

	if len(provider.campaigns) != 1 {
		t.Fatalf("expected one campaign, got %d", len(provider.campaigns))
	}
	campaign := provider.campaigns[0]
	if campaign.Name != "Samedi" || !campaign.UnicodeEnabled || campaign.ListID != 20 {
		t.Errorf("unexpected campaign: %+v", campaign)
	}
	if campaign.ScheduledAt.IsZero() {
		t.Error("campaign must be scheduled in the future")
	}

	// Phones are pushed to the provider in international format.
	if len(provider.created) != 3 {
		t.Errorf("created %d provider contacts, want 3", len(provider.created))
	}
}

func TestSendAnnouncementUpdatesExistingContact(t *testing.T) {
	provider := newFakeProvider(10)
	provider.existingContacts["contact0@example.com"] = true

	svc := &service.AnnouncementService{Provider: provider, Sender: "Nightclub"}
	run, err := svc.SendAnnouncement(batch(2), "Message", "")
	if err != nil {
		t.Fatalf("SendAnnouncement: %v", err)
	}

	if run.ContactsAdded != 2 {
		t.Errorf("contactsAdded = %d, want 2", run.ContactsAdded)
	}
	if len(provider.updated) != 1 || provider.updated[0] != "contact0@example.com" {
		t.Errorf("existing contact not updated: %v", provider.updated)
	}
	if len(provider.created) != 1 {
		t.Errorf("new contact not created: %v", provider.created)
	}
	if len(provider.addedToList) != 2 {
		t.Errorf("both contacts must join the list, got %v", provider.addedToList)
	}
}

func TestSendAnnouncementTotalFailure(t *testing.T) {
	provider := newFakeProvider(10)
	provider.failCreateContact = true

	svc := &service.AnnouncementService{Provider: provider, Sender: "Nightclub"}
	_, err := svc.SendAnnouncement(batch(3), "Message", "")

	var noneAdded *appErrors.ErrNoContactsAdded
	if !errors.As(err, &noneAdded) {
		t.Fatalf("expected total-failure error, got %v", err)
	}
	if len(noneAdded.Failures) != 3 {
		t.Errorf("failures = %d, want 3", len(noneAdded.Failures))
	}
	if len(provider.campaigns) != 0 {
		t.Error("no campaign may be created when zero contacts succeed")
	}
}

func TestSendAnnouncementCleansUpStaleResources(t *testing.T) {
	provider := newFakeProvider(10)
	provider.staleCampaigns = []brevo.Resource{{ID: 101}, {ID: 102}}
	provider.staleLists = []brevo.Resource{{ID: 201}}

	svc := &service.AnnouncementService{Provider: provider, Sender: "Nightclub"}
	contacts := batch(1)
	if _, err := svc.SendAnnouncement(contacts, "Message", ""); err != nil {
		t.Fatalf("SendAnnouncement: %v", err)
	}

	if len(provider.deletedCampaigns) != 2 {
		t.Errorf("stale campaigns deleted = %v, want 2 entries", provider.deletedCampaigns)
	}
	if len(provider.deletedLists) != 1 {
		t.Errorf("stale lists deleted = %v, want 1 entry", provider.deletedLists)
	}
	if len(provider.deletedContacts) != 1 || provider.deletedContacts[0] != "contact0@example.com" {
		t.Errorf("batch contacts deleted = %v", provider.deletedContacts)
	}
}
