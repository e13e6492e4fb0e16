package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Contact message delivery states (email outcome, not webhook).
const (
	ContactNew    = "new"
	ContactSent   = "sent"
	ContactFailed = "failed"
)

// ContactMessage is a persisted contact-form submission. The record is
// written before the confirmation mail goes out; Status is patched once
// with the send outcome.
type ContactMessage struct {
	Id        string    `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"not null"`
	Email     string    `json:"email" gorm:"not null;index"`
	Subject   string    `json:"subject"`
	Message   string    `json:"message" gorm:"type:text;not null"`
	Status    string    `json:"status" gorm:"not null;default:'new';index"`
	SendError string    `json:"send_error,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (m *ContactMessage) BeforeCreate(tx *gorm.DB) (err error) {
	if m.Id == "" {
		m.Id = uuid.NewString()
	}
	if m.Status == "" {
		m.Status = ContactNew
	}
	return
}

// ContactInput is the wire DTO for POST /api/contact.
type ContactInput struct {
	Name    string `json:"name" validate:"required,min=2,max=100"`
	Email   string `json:"email" validate:"required,email,max=255"`
	Subject string `json:"subject" validate:"omitempty,max=200"`
	Message string `json:"message" validate:"required,min=10,max=4000"`
}
