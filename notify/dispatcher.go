// Package notify implements the best-effort downstream side of an intake:
// a confirmation email and an automation webhook, both fired after the
// record is persisted, both decoupled from the client response.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"sync"
	"time"

	"intake-backend/database"
	"intake-backend/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Dispatcher fires the post-insert notifications for intake records and
// patches each record with the outcome. It is safe for concurrent use.
type Dispatcher struct {
	DB         *gorm.DB
	Mailer     Mailer
	WebhookURL string
	Timeout    time.Duration
	Client     *http.Client

	wg sync.WaitGroup
}

func NewDispatcher(db *gorm.DB, mailer Mailer, webhookURL string) *Dispatcher {
	return &Dispatcher{
		DB:         db,
		Mailer:     mailer,
		WebhookURL: webhookURL,
		Timeout:    5 * time.Second,
		Client:     &http.Client{},
	}
}

// webhookPayload mirrors the submitted form plus the generated id and a
// server-set timestamp, in the shape the automation flow expects.
type webhookPayload struct {
	RequestID string `json:"requestId"`
	Timestamp string `json:"timestamp"`

	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Phone    string `json:"phone,omitempty"`

	Community   string `json:"community"`
	CompanyName string `json:"companyName"`
	SiteGoal    string `json:"siteGoal"`

	HasDomain         bool     `json:"hasDomain"`
	CurrentDomain     string   `json:"currentDomain,omitempty"`
	DomainPreferences []string `json:"domainPreferences,omitempty"`
	AutoRegister      bool     `json:"autoRegister"`

	HasLogo    bool   `json:"hasLogo"`
	LogoPrompt string `json:"logoPrompt,omitempty"`

	PagesWanted []string `json:"pagesWanted"`
	Features    []string `json:"features,omitempty"`

	CopyTone        string `json:"copyTone,omitempty"`
	CRMProvider     string `json:"crmProvider,omitempty"`
	Timeline        string `json:"timeline,omitempty"`
	Budget          string `json:"budget,omitempty"`
	SpecialRequests string `json:"specialRequests,omitempty"`
}

func payloadFromRecord(req models.WebsiteRequest) webhookPayload {
	return webhookPayload{
		RequestID:         req.Id,
		Timestamp:         time.Now().UTC().Format(time.RFC3339),
		FullName:          req.FullName,
		Email:             req.Email,
		Phone:             req.Phone,
		Community:         req.Community,
		CompanyName:       req.CompanyName,
		SiteGoal:          req.SiteGoal,
		HasDomain:         req.HasDomain,
		CurrentDomain:     req.CurrentDomain,
		DomainPreferences: req.DomainPreferences,
		AutoRegister:      req.AutoRegister,
		HasLogo:           req.HasLogo,
		LogoPrompt:        req.LogoPrompt,
		PagesWanted:       req.PagesWanted,
		Features:          req.Features,
		CopyTone:          req.CopyTone,
		CRMProvider:       req.CRMProvider,
		Timeline:          req.Timeline,
		Budget:            req.Budget,
		SpecialRequests:   req.SpecialRequests,
	}
}

// Dispatch runs the email + webhook continuation for an already-persisted
// request. It returns immediately; the work runs on its own goroutine with
// context.Background so a client disconnect cannot cancel it.
func (d *Dispatcher) Dispatch(req models.WebsiteRequest) {
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()

		// Confirmation email is best-effort and independent of the webhook:
		// a send failure is logged and never touches the stored status.
		if d.Mailer != nil {
			body := fmt.Sprintf(
				"Hi %s,\n\nWe received your website request for %s and will follow up within 24 hours.\n\nRequest ID: %s\n",
				req.FullName, req.CompanyName, req.Id)
			if err := d.Mailer.Send(req.Email, "We received your website request", body); err != nil {
				log.Printf("confirmation email for %s failed: %v", req.Id, err)
			}
		}

		body, err := d.fireWebhook(payloadFromRecord(req))
		if err != nil {
			log.Printf("intake webhook for %s failed: %v", req.Id, err)
			detail, _ := json.Marshal(map[string]string{"error": err.Error()})
			if e := database.PatchRequestStatus(d.DB, req.Id, models.StatusFailed, false, datatypes.JSON(detail)); e != nil {
				log.Printf("status patch for %s failed: %v", req.Id, e)
			}
			return
		}

		if e := database.PatchRequestStatus(d.DB, req.Id, models.StatusNotified, true, datatypes.JSON(body)); e != nil {
			log.Printf("status patch for %s failed: %v", req.Id, e)
		}
	}()
}

func (d *Dispatcher) fireWebhook(p webhookPayload) ([]byte, error) {
	if d.WebhookURL == "" {
		return nil, fmt.Errorf("intake webhook URL not configured")
	}

	raw, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), d.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.WebhookURL, bytes.NewReader(raw))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("webhook returned %d: %s", resp.StatusCode, string(body))
	}
	if len(body) == 0 || !json.Valid(body) {
		// Store something JSON-shaped even when the hook answers with plain text.
		body, _ = json.Marshal(map[string]string{"raw": string(body)})
	}
	return body, nil
}

// SendContactConfirmation mails the contact-form sender asynchronously and
// patches the stored message with the outcome.
func (d *Dispatcher) SendContactConfirmation(msg models.ContactMessage) {
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()

		subject := "Thanks for reaching out"
		body := fmt.Sprintf("Hi %s,\n\nThanks for your message! I'll get back to you soon.\n", msg.Name)
		if err := d.Mailer.Send(msg.Email, subject, body); err != nil {
			log.Printf("contact email for %s failed: %v", msg.Id, err)
			if e := database.PatchContactStatus(d.DB, msg.Id, models.ContactFailed, err.Error()); e != nil {
				log.Printf("contact patch for %s failed: %v", msg.Id, e)
			}
			return
		}
		if e := database.PatchContactStatus(d.DB, msg.Id, models.ContactSent, ""); e != nil {
			log.Printf("contact patch for %s failed: %v", msg.Id, e)
		}
	}()
}

// Wait blocks until all in-flight notifications finish. Used by tests and
// graceful shutdown.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}
