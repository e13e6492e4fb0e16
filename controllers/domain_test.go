package controllers

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"intake-backend/middlewares"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func domainApp() *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: middlewares.ErrorHandler})
	app.Get("/api/domain-check", CheckDomain)
	return app
}

type domainCheckResponse struct {
	Domain  string         `json:"domain"`
	Results []domainResult `json:"results"`
}

func TestCheckDomainStripsKnownTLD(t *testing.T) {
	restore := domainRand
	domainRand = func() float64 { return 1 } // never randomly unavailable
	defer func() { domainRand = restore }()

	app := domainApp()
	req := httptest.NewRequest("GET", "/api/domain-check?domain=JaneConsulting.com", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)

	var body domainCheckResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "janeconsulting", body.Domain)
	require.Len(t, body.Results, 10)
	assert.Equal(t, "janeconsulting.com", body.Results[0].Domain)
	for _, r := range body.Results {
		assert.True(t, r.Available, "%s should be available", r.Domain)
		assert.Greater(t, r.Price, 0.0)
	}
}

func TestCheckDomainBrandNamesAlwaysTaken(t *testing.T) {
	restore := domainRand
	domainRand = func() float64 { return 1 }
	defer func() { domainRand = restore }()

	app := domainApp()
	req := httptest.NewRequest("GET", "/api/domain-check?domain=mygoogleclone", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)

	var body domainCheckResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	for _, r := range body.Results {
		assert.False(t, r.Available)
		assert.Equal(t, "Domain unavailable", r.Reason)
	}
}

func TestCheckDomainTooShort(t *testing.T) {
	app := domainApp()

	for _, q := range []string{"", "a", "a.com"} {
		req := httptest.NewRequest("GET", "/api/domain-check?domain="+q, nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, 400, resp.StatusCode, "domain %q should be rejected", q)
	}
}

func TestCheckDomainPopularFlakiness(t *testing.T) {
	restore := domainRand
	domainRand = func() float64 { return 0 } // always below threshold
	defer func() { domainRand = restore }()

	app := domainApp()
	req := httptest.NewRequest("GET", "/api/domain-check?domain=janeco", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)

	var body domainCheckResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	for _, r := range body.Results {
		if r.Popular {
			assert.False(t, r.Available, "popular %s should be flaky-unavailable", r.Extension)
		} else {
			assert.True(t, r.Available)
		}
	}
}
