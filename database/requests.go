package database

import (
	"errors"

	"intake-backend/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ErrRequestNotFound is returned when a status patch targets an id that was
// never inserted.
var ErrRequestNotFound = errors.New("website request not found")

// PatchRequestStatus moves a pending request to a terminal status and attaches
// the raw webhook outcome. Only rows still in pending are touched, so repeated
// patches after the first terminal write are no-ops.
func PatchRequestStatus(db *gorm.DB, id, status string, fired bool, detail datatypes.JSON) error {
	res := db.Model(&models.WebsiteRequest{}).
		Where("id = ? AND status = ?", id, models.StatusPending).
		Updates(map[string]any{
			"status":           status,
			"webhook_fired":    fired,
			"webhook_response": detail,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		var count int64
		if err := db.Model(&models.WebsiteRequest{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return ErrRequestNotFound
		}
		// Already terminal; nothing to do.
	}
	return nil
}

// PatchContactStatus records the confirmation-mail outcome for a contact
// message. Same idempotency rule as PatchRequestStatus.
func PatchContactStatus(db *gorm.DB, id, status, sendErr string) error {
	res := db.Model(&models.ContactMessage{}).
		Where("id = ? AND status = ?", id, models.ContactNew).
		Updates(map[string]any{
			"status":     status,
			"send_error": sendErr,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		var count int64
		if err := db.Model(&models.ContactMessage{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return ErrRequestNotFound
		}
	}
	return nil
}
