package controllers

import (
	"intake-backend/database"
	"intake-backend/middlewares"
	"intake-backend/models"

	"github.com/gofiber/fiber/v2"
)

// CreateContact handles POST /api/contact: validate, check the mail relay is
// configured, persist the message, send the confirmation asynchronously.
func CreateContact(c *fiber.Ctx) error {
	var input models.ContactInput
	if err := middlewares.BindAndValidate(c, &input); err != nil {
		return err
	}

	mailer, ok := Notifier.Mailer.(interface{ Configured() bool })
	if ok && !mailer.Configured() {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "Server configuration error",
			"message": "Email service is not properly configured. Please try again later.",
		})
	}

	msg := models.ContactMessage{
		Name:    input.Name,
		Email:   input.Email,
		Subject: input.Subject,
		Message: input.Message,
	}
	if err := database.DB.Create(&msg).Error; err != nil {
		return err
	}

	Notifier.SendContactConfirmation(msg)

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Thank you for your message! I'll get back to you soon.",
	})
}

// GetContacts lists stored contact messages for the admin dashboard.
func GetContacts(c *fiber.Ctx) error {
	var messages []models.ContactMessage
	if err := database.DB.Order("created_at DESC").Find(&messages).Error; err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"contacts": messages,
		"count":    len(messages),
	})
}
