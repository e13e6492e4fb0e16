package controllers

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"intake-backend/middlewares"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractCompanyName(t *testing.T) {
	cases := []struct {
		desc     string
		provided string
		want     string
	}{
		{"We run Tech Innovations Inc here", "", "Tech Innovations Inc"},
		{"Jane Consulting provides home staging services", "", "Jane Consulting"},
		{`The brand is called "Gator Homes"`, "", "Gator Homes"},
		{"anything at all", "  Acme LLC ", "Acme LLC"},
		{"lowercase only description", "", "Your Business"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, extractCompanyName(tc.desc, tc.provided), "desc=%q", tc.desc)
	}
}

func TestDetermineBusinessType(t *testing.T) {
	cases := map[string]string{
		"AI software startup":              "technology",
		"a fitness studio":                 "health",
		"family restaurant kitchen":        "food",
		"we invest in real estate":         "finance",
		"general contractor services":      "construction",
		"graphic design and art prints":    "creative",
		"wholesale distribution warehouse": "business",
	}
	for desc, want := range cases {
		assert.Equal(t, want, determineBusinessType(desc), "desc=%q", desc)
	}
}

func TestGenerateLogoEndpoint(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: middlewares.ErrorHandler})
	app.Post("/api/generate-logo", GenerateLogo)

	payload := `{"description":"Tech Innovations Inc is an AI software company"}`
	req := httptest.NewRequest("POST", "/api/generate-logo", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)

	var body struct {
		Success      bool          `json:"success"`
		CompanyName  string        `json:"companyName"`
		BusinessType string        `json:"businessType"`
		Logos        []logoConcept `json:"logos"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.True(t, body.Success)
	assert.Equal(t, "Tech Innovations Inc", body.CompanyName)
	assert.Equal(t, "technology", body.BusinessType)
	require.Len(t, body.Logos, 4)
	for _, l := range body.Logos {
		assert.Contains(t, l.SVG, "<svg")
	}
	// minimalist style renders the name uppercased
	assert.Contains(t, body.Logos[0].SVG, "TECH INNOVATIONS INC")
	styles := []string{body.Logos[0].Style, body.Logos[1].Style, body.Logos[2].Style, body.Logos[3].Style}
	assert.Equal(t, []string{"minimalist", "modern", "classic", "bold"}, styles)
}

func TestGenerateLogoRequiresDescription(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: middlewares.ErrorHandler})
	app.Post("/api/generate-logo", GenerateLogo)

	req := httptest.NewRequest("POST", "/api/generate-logo", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)
}
