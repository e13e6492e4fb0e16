package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"intake-backend/middlewares"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func deployApp() *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: middlewares.ErrorHandler})
	app.Post("/api/nodes/vercel-deployer", VercelDeploy)
	return app
}

func postDeploy(t *testing.T, app *fiber.App, payload string) *http.Response {
	t.Helper()
	req := httptest.NewRequest("POST", "/api/nodes/vercel-deployer", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func TestVercelDeployMissingToken(t *testing.T) {
	t.Setenv("VERCEL_TOKEN", "")

	resp := postDeploy(t, deployApp(), `{"operation":"list-projects"}`)
	assert.Equal(t, 500, resp.StatusCode)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "Server configuration error", body["error"])
}

func TestVercelDeployUnknownOperation(t *testing.T) {
	t.Setenv("VERCEL_TOKEN", "tok")

	resp := postDeploy(t, deployApp(), `{"operation":"reboot-the-moon"}`)
	assert.Equal(t, 400, resp.StatusCode)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Contains(t, body["error"], "unknown Vercel operation")
}

func TestVercelDeployListProjects(t *testing.T) {
	t.Setenv("VERCEL_TOKEN", "tok")
	t.Setenv("VERCEL_TEAM_ID", "team_1")

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		assert.Equal(t, "/v10/projects", r.URL.Path)
		assert.Equal(t, "team_1", r.URL.Query().Get("teamId"))
		w.Write([]byte(`{"projects":[{"name":"site"}]}`))
	}))
	defer srv.Close()

	restore := vercelAPIBase
	vercelAPIBase = srv.URL
	defer func() { vercelAPIBase = restore }()

	resp := postDeploy(t, deployApp(), `{"operation":"list-projects"}`)
	require.Equal(t, 200, resp.StatusCode)

	var body struct {
		Success   bool                   `json:"success"`
		Operation string                 `json:"operation"`
		Data      map[string]interface{} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.True(t, body.Success)
	assert.Equal(t, "list-projects", body.Operation)
	assert.NotNil(t, body.Data["projects"])
}

func TestVercelDeployCreateProjectValidation(t *testing.T) {
	t.Setenv("VERCEL_TOKEN", "tok")

	resp := postDeploy(t, deployApp(), `{"operation":"create-project"}`)
	assert.Equal(t, 400, resp.StatusCode)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Contains(t, body["error"], "name and gitRepository are required")
}

func TestVercelDeployUpstreamError(t *testing.T) {
	t.Setenv("VERCEL_TOKEN", "tok")
	t.Setenv("VERCEL_TEAM_ID", "")

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"error":{"message":"token scope insufficient"}}`))
	}))
	defer srv.Close()

	restore := vercelAPIBase
	vercelAPIBase = srv.URL
	defer func() { vercelAPIBase = restore }()

	resp := postDeploy(t, deployApp(), `{"operation":"list-projects"}`)
	assert.Equal(t, 400, resp.StatusCode)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Contains(t, body["error"], "token scope insufficient")
}
