package controllers

import (
	"os"
	"strings"

	"intake-backend/database"
	"intake-backend/middlewares"
	"intake-backend/models"
	"intake-backend/notify"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Notifier fires the post-insert email + webhook continuation. Wired in main,
// replaced by tests.
var Notifier *notify.Dispatcher

// CreateRequest handles POST /api/requests: validate, persist a pending
// record, kick off the notification continuation, answer immediately.
func CreateRequest(c *fiber.Ctx) error {
	if strings.TrimSpace(os.Getenv("INTAKE_WEBHOOK_URL")) == "" {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "Server configuration error",
			"message": "Request intake is not properly configured. Please try again later.",
		})
	}

	var input models.WebsiteRequestInput
	if err := middlewares.BindAndValidate(c, &input); err != nil {
		return err
	}

	record := input.ToRecord()
	if err := database.DB.Create(&record).Error; err != nil {
		// No notification without a persisted record.
		return err
	}

	Notifier.Dispatch(record)

	return c.JSON(fiber.Map{
		"success":   true,
		"requestId": record.Id,
		"message":   "Website request submitted successfully. You will receive updates via email.",
	})
}

// GetRequests lists intake records for the admin dashboard, newest first.
// Optional ?status= filter.
func GetRequests(c *fiber.Ctx) error {
	q := database.DB.Model(&models.WebsiteRequest{}).Order("created_at DESC")
	if status := strings.TrimSpace(c.Query("status")); status != "" {
		q = q.Where("status = ?", status)
	}

	var requests []models.WebsiteRequest
	if err := q.Find(&requests).Error; err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"requests": requests,
		"count":    len(requests),
	})
}

// GetRequest fetches one intake record by id.
func GetRequest(c *fiber.Ctx) error {
	var request models.WebsiteRequest
	if err := database.DB.Where("id = ?", c.Params("id")).First(&request).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "request not found")
		}
		return err
	}
	return c.JSON(request)
}
