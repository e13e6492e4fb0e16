package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Request lifecycle. Status only ever moves forward:
// pending -> notified (webhook delivered) or pending -> failed.
const (
	StatusPending  = "pending"
	StatusNotified = "notified"
	StatusFailed   = "failed"
)

// Community options offered on the build-my-site form.
const (
	CommunityGator = "Gator"
	CommunitySubTo = "SubTo"
	CommunityOther = "Other"
)

// WebsiteRequest is one persisted website-build lead. Everything except
// Status/WebhookFired/WebhookResponse/UpdatedAt is written once at intake
// and never touched again.
type WebsiteRequest struct {
	Id       string `json:"id" gorm:"primaryKey"`
	FullName string `json:"full_name" gorm:"not null"`
	Email    string `json:"email" gorm:"not null;index"`
	Phone    string `json:"phone"`

	Community   string `json:"community" gorm:"not null"`
	CompanyName string `json:"company_name" gorm:"not null"`
	SiteGoal    string `json:"site_goal" gorm:"type:text;not null"`

	HasDomain         bool                        `json:"has_domain"`
	CurrentDomain     string                      `json:"current_domain"`
	DomainPreferences datatypes.JSONSlice[string] `json:"domain_preferences"`
	AutoRegister      bool                        `json:"auto_register"`

	HasLogo    bool   `json:"has_logo"`
	LogoPrompt string `json:"logo_prompt" gorm:"type:text"`

	PagesWanted datatypes.JSONSlice[string] `json:"pages_wanted"`
	Features    datatypes.JSONSlice[string] `json:"features"`

	CopyTone        string `json:"copy_tone"`
	CRMProvider     string `json:"crm_provider"`
	Timeline        string `json:"timeline"`
	Budget          string `json:"budget"`
	SpecialRequests string `json:"special_requests" gorm:"type:text"`

	Status          string         `json:"status" gorm:"not null;default:'pending';index"`
	WebhookFired    bool           `json:"webhook_fired"`
	WebhookResponse datatypes.JSON `json:"webhook_response,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (r *WebsiteRequest) BeforeCreate(tx *gorm.DB) (err error) {
	// UUID version 4
	if r.Id == "" {
		r.Id = uuid.NewString()
	}
	if r.Status == "" {
		r.Status = StatusPending
	}
	return
}

// WebsiteRequestInput is the wire DTO for POST /api/requests. Unknown enum
// values fail validation instead of being coerced.
type WebsiteRequestInput struct {
	FullName string `json:"fullName" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Phone    string `json:"phone" validate:"omitempty,max=30"`

	Community   string `json:"community" validate:"required,oneof=Gator SubTo Other"`
	CompanyName string `json:"companyName" validate:"required,min=2,max=200"`
	SiteGoal    string `json:"siteGoal" validate:"required,min=10,max=2000"`

	HasDomain         bool     `json:"hasDomain"`
	CurrentDomain     string   `json:"currentDomain" validate:"omitempty,max=255"`
	DomainPreferences []string `json:"domainPreferences" validate:"omitempty,dive,min=2,max=255"`
	AutoRegister      bool     `json:"autoRegister"`

	HasLogo    bool   `json:"hasLogo"`
	LogoPrompt string `json:"logoPrompt" validate:"omitempty,max=2000"`

	PagesWanted []string `json:"pagesWanted" validate:"required,min=1,dive,required"`
	Features    []string `json:"features" validate:"omitempty,dive,required"`

	CopyTone        string `json:"copyTone" validate:"omitempty,max=100"`
	CRMProvider     string `json:"crmProvider" validate:"omitempty,max=100"`
	Timeline        string `json:"timeline" validate:"omitempty,max=100"`
	Budget          string `json:"budget" validate:"omitempty,max=100"`
	SpecialRequests string `json:"specialRequests" validate:"omitempty,max=4000"`
}

// ToRecord maps a validated input onto a fresh pending record.
func (in *WebsiteRequestInput) ToRecord() WebsiteRequest {
	return WebsiteRequest{
		FullName:          in.FullName,
		Email:             in.Email,
		Phone:             in.Phone,
		Community:         in.Community,
		CompanyName:       in.CompanyName,
		SiteGoal:          in.SiteGoal,
		HasDomain:         in.HasDomain,
		CurrentDomain:     in.CurrentDomain,
		DomainPreferences: datatypes.NewJSONSlice(in.DomainPreferences),
		AutoRegister:      in.AutoRegister,
		HasLogo:           in.HasLogo,
		LogoPrompt:        in.LogoPrompt,
		PagesWanted:       datatypes.NewJSONSlice(in.PagesWanted),
		Features:          datatypes.NewJSONSlice(in.Features),
		CopyTone:          in.CopyTone,
		CRMProvider:       in.CRMProvider,
		Timeline:          in.Timeline,
		Budget:            in.Budget,
		SpecialRequests:   in.SpecialRequests,
		Status:            StatusPending,
	}
}
