package controllers

import (
	"math/rand"
	"regexp"
	"strings"
	"time"

	"intake-backend/utils"

	"github.com/gofiber/fiber/v2"
)

type domainExtension struct {
	Ext         string
	Price       float64
	YearlyPrice float64
	Popular     bool
	Description string
}

var domainExtensions = []domainExtension{
	{".com", 12.99, 12.99, true, "Most popular choice"},
	{".net", 14.99, 14.99, false, "Great for tech companies"},
	{".org", 13.99, 13.99, false, "Perfect for organizations"},
	{".io", 39.99, 39.99, true, "Popular with startups"},
	{".co", 24.99, 24.99, false, "Modern alternative to .com"},
	{".app", 18.99, 18.99, false, "Perfect for apps"},
	{".dev", 15.99, 15.99, false, "Great for developers"},
	{".biz", 16.99, 16.99, false, "Business focused"},
	{".info", 11.99, 11.99, false, "Information sites"},
	{".tech", 22.99, 22.99, false, "Technology focused"},
}

// Names that are always reported as taken in the mock.
var unavailableDomains = []string{"google", "facebook", "amazon", "microsoft", "apple", "netflix"}

var tldSuffix = regexp.MustCompile(`(?i)\.(com|net|org|io|co|app|dev|biz|info|tech)$`)

// domainRand simulates registrar flakiness for popular extensions; swapped
// out in tests for determinism.
var domainRand = rand.Float64

type domainResult struct {
	Domain      string  `json:"domain"`
	Extension   string  `json:"extension"`
	Available   bool    `json:"available"`
	Price       float64 `json:"price"`
	YearlyPrice float64 `json:"yearlyPrice"`
	Popular     bool    `json:"popular"`
	Description string  `json:"description"`
	Reason      string  `json:"reason,omitempty"`
}

// CheckDomain handles GET /api/domain-check?domain=. It is a simulated
// availability check (no real registrar behind it) across a fixed price table.
func CheckDomain(c *fiber.Ctx) error {
	domain := strings.ToLower(strings.TrimSpace(c.Query("domain")))
	if len(domain) < 2 {
		return fiber.NewError(fiber.StatusBadRequest, "Domain name too short")
	}

	cleanDomain := tldSuffix.ReplaceAllString(domain, "")
	if len(cleanDomain) < 2 {
		return fiber.NewError(fiber.StatusBadRequest, "Domain name too short")
	}

	results := make([]domainResult, 0, len(domainExtensions))
	for _, ext := range domainExtensions {
		taken := false
		for _, brand := range unavailableDomains {
			if strings.Contains(cleanDomain, brand) {
				taken = true
				break
			}
		}
		randomUnavailable := ext.Popular && domainRand() < 0.3

		r := domainResult{
			Domain:      cleanDomain + ext.Ext,
			Extension:   ext.Ext,
			Available:   !taken && !randomUnavailable,
			Price:       utils.Round2(ext.Price),
			YearlyPrice: utils.Round2(ext.YearlyPrice),
			Popular:     ext.Popular,
			Description: ext.Description,
		}
		if taken {
			r.Reason = "Domain unavailable"
		}
		results = append(results, r)
	}

	return c.JSON(fiber.Map{
		"domain":     cleanDomain,
		"results":    results,
		"searchedAt": time.Now().UTC().Format(time.RFC3339),
	})
}
