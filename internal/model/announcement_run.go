// internal/model/announcement_run.go
package model

// ContactError records why one contact could not be pushed to the provider.
type ContactError struct {
	Identity string `json:"identity"`
	Phone    string `json:"phone,omitempty"`
	Reason   string `json:"reason"`
}

// AnnouncementRun is the in-memory result of one bulk-SMS attempt. It is never
// persisted: provider-side folders, lists and campaigns are transient.
type AnnouncementRun struct {
	RequiredCredits  int            `json:"required_credits"`
	CreditsBefore    float64        `json:"credits_before"`
	CreditsUsed      int            `json:"credits_used"`
	CreditsRemaining float64        `json:"credits_remaining"`
	FolderID         int64          `json:"folder_id"`
	ListID           int64          `json:"list_id"`
	CampaignID       int64          `json:"campaign_id"`
	ContactsAdded    int            `json:"contacts_added"`
	ContactsFailed   int            `json:"contacts_failed"`
	ContactErrors    []ContactError `json:"contact_errors"`
}
