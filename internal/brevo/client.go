// Package brevo is a thin client for the Brevo marketing API: account
// credits, contact/list/folder management and SMS campaigns.
package brevo

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const defaultBaseURL = "https://api.brevo.com"

// ErrNotFound is returned for 404 responses. Deletion helpers treat it as
// "already absent" and swallow it.
var ErrNotFound = errors.New("brevo: resource not found")

// API is the provider surface the announcement service depends on.
type API interface {
	GetSMSCredits() (float64, error)
	CreateFolder(name string) (int64, error)
	CreateList(name string, folderID int64) (int64, error)
	GetContact(email string) (*Contact, error)
	CreateContact(email string, attrs ContactAttributes) error
	UpdateContact(email string, attrs ContactAttributes) error
	DeleteContact(email string) error
	AddContactsToList(listID int64, emails []string) error
	CreateSMSCampaign(campaign SMSCampaign) (int64, error)
	ListSMSCampaigns(limit, offset int) ([]Resource, error)
	DeleteSMSCampaign(id int64) error
	ListLists(limit, offset int) ([]Resource, error)
	DeleteList(id int64) error
}

// Contact is the subset of a provider contact this service reads.
type Contact struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
}

// ContactAttributes mirrors Brevo's attribute keys. SMS must be in
// international format.
type ContactAttributes struct {
	SMS       string `json:"SMS,omitempty"`
	FirstName string `json:"FIRSTNAME,omitempty"`
	LastName  string `json:"LASTNAME,omitempty"`
}

// Resource is a provider-side object (list or campaign) seen during cleanup.
type Resource struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// SMSCampaign describes a campaign to create and schedule.
type SMSCampaign struct {
	Name           string
	Sender         string
	Content        string
	ListID         int64
	ScheduledAt    time.Time
	UnicodeEnabled bool
}

// Client talks to the Brevo REST API.
type Client struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

func NewClient(apiKey string) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// NewClientWithBaseURL points the client at a different host (tests).
func NewClientWithBaseURL(apiKey, baseURL string) *Client {
	c := NewClient(apiKey)
	c.baseURL = baseURL
	return c
}

func (c *Client) do(method, path string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("brevo: encode %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("brevo: build %s %s: %w", method, path, err)
	}
	req.Header.Set("api-key", c.apiKey)
	req.Header.Set("accept", "application/json")
	if body != nil {
		req.Header.Set("content-type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("brevo: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("brevo: %s %s returned %d: %s", method, path, resp.StatusCode, bytes.TrimSpace(detail))
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("brevo: decode %s %s: %w", method, path, err)
		}
	}
	return nil
}

// GetSMSCredits returns the credit balance of the account's SMS plan, or 0
// when the account has no SMS plan.
func (c *Client) GetSMSCredits() (float64, error) {
	var out struct {
		Plan []struct {
			Type    string  `json:"type"`
			Credits float64 `json:"credits"`
		} `json:"plan"`
	}
	if err := c.do(http.MethodGet, "/v3/account", nil, &out); err != nil {
		return 0, err
	}
	for _, plan := range out.Plan {
		if plan.Type == "sms" {
			return plan.Credits, nil
		}
	}
	return 0, nil
}

func (c *Client) CreateFolder(name string) (int64, error) {
	var out struct {
		ID int64 `json:"id"`
	}
	body := map[string]string{"name": name}
	if err := c.do(http.MethodPost, "/v3/contacts/folders", body, &out); err != nil {
		return 0, err
	}
	return out.ID, nil
}

func (c *Client) CreateList(name string, folderID int64) (int64, error) {
	var out struct {
		ID int64 `json:"id"`
	}
	body := map[string]any{"name": name, "folderId": folderID}
	if err := c.do(http.MethodPost, "/v3/contacts/lists", body, &out); err != nil {
		return 0, err
	}
	return out.ID, nil
}

// GetContact looks a contact up by email. A missing contact is (nil, nil).
func (c *Client) GetContact(email string) (*Contact, error) {
	var out Contact
	err := c.do(http.MethodGet, "/v3/contacts/"+url.PathEscape(email), nil, &out)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateContact(email string, attrs ContactAttributes) error {
	body := map[string]any{"email": email, "attributes": attrs}
	return c.do(http.MethodPost, "/v3/contacts", body, nil)
}

func (c *Client) UpdateContact(email string, attrs ContactAttributes) error {
	body := map[string]any{"attributes": attrs, "updateEnabled": true}
	return c.do(http.MethodPut, "/v3/contacts/"+url.PathEscape(email), body, nil)
}

// DeleteContact removes a contact; an already-absent contact is not an error.
func (c *Client) DeleteContact(email string) error {
	err := c.do(http.MethodDelete, "/v3/contacts/"+url.PathEscape(email), nil, nil)
	if errors.Is(err, ErrNotFound) {
		return nil
	}
	return err
}

func (c *Client) AddContactsToList(listID int64, emails []string) error {
	body := map[string]any{"emails": emails}
	path := fmt.Sprintf("/v3/contacts/lists/%d/contacts/add", listID)
	return c.do(http.MethodPost, path, body, nil)
}

func (c *Client) CreateSMSCampaign(campaign SMSCampaign) (int64, error) {
	payload := struct {
		Name       string `json:"name"`
		Sender     string `json:"sender"`
		Content    string `json:"content"`
		Recipients struct {
			ListIDs []int64 `json:"listIds"`
		} `json:"recipients"`
		ScheduledAt    string `json:"scheduledAt"`
		UnicodeEnabled bool   `json:"unicodeEnabled"`
	}{
		Name:           campaign.Name,
		Sender:         campaign.Sender,
		Content:        campaign.Content,
		ScheduledAt:    campaign.ScheduledAt.UTC().Format(time.RFC3339),
		UnicodeEnabled: campaign.UnicodeEnabled,
	}
	payload.Recipients.ListIDs = []int64{campaign.ListID}

	var out struct {
		ID int64 `json:"id"`
	}
	if err := c.do(http.MethodPost, "/v3/smsCampaigns", payload, &out); err != nil {
		return 0, err
	}
	return out.ID, nil
}

func (c *Client) ListSMSCampaigns(limit, offset int) ([]Resource, error) {
	var out struct {
		Campaigns []Resource `json:"campaigns"`
	}
	path := "/v3/smsCampaigns?limit=" + strconv.Itoa(limit) + "&offset=" + strconv.Itoa(offset)
	if err := c.do(http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out.Campaigns, nil
}

func (c *Client) DeleteSMSCampaign(id int64) error {
	err := c.do(http.MethodDelete, "/v3/smsCampaigns/"+strconv.FormatInt(id, 10), nil, nil)
	if errors.Is(err, ErrNotFound) {
		return nil
	}
	return err
}

func (c *Client) ListLists(limit, offset int) ([]Resource, error) {
	var out struct {
		Lists []Resource `json:"lists"`
	}
	path := "/v3/contacts/lists?limit=" + strconv.Itoa(limit) + "&offset=" + strconv.Itoa(offset)
	if err := c.do(http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out.Lists, nil
}

func (c *Client) DeleteList(id int64) error {
	err := c.do(http.MethodDelete, "/v3/contacts/lists/"+strconv.FormatInt(id, 10), nil, nil)
	if errors.Is(err, ErrNotFound) {
		return nil
	}
	return err
}
