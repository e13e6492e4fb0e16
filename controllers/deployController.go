package controllers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
)

// vercelAPIBase is a package var so tests can point the proxy at a stub.
var vercelAPIBase = "https://api.vercel.com"

var vercelClient = &http.Client{Timeout: 15 * time.Second}

// VercelDeploy handles POST /api/nodes/vercel-deployer: an operation-switched
// proxy to the Vercel API used by the site-builder automation flow.
func VercelDeploy(c *fiber.Ctx) error {
	var raw map[string]interface{}
	if err := c.BodyParser(&raw); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	operation, _ := raw["operation"].(string)
	delete(raw, "operation")

	token := strings.TrimSpace(os.Getenv("VERCEL_TOKEN"))
	if token == "" {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success":   false,
			"operation": operation,
			"error":     "Server configuration error",
			"message":   "Deployment automation is not properly configured.",
		})
	}
	teamID := strings.TrimSpace(os.Getenv("VERCEL_TEAM_ID"))

	var (
		result interface{}
		err    error
	)
	switch operation {
	case "create-project":
		result, err = vercelCreateProject(raw, token, teamID)
	case "set-environment-variables":
		result, err = vercelSetEnvVars(raw, token)
	case "create-deployment":
		result, err = vercelCall(http.MethodPost, "/v13/deployments", raw, token)
	case "add-domain":
		projectID, _ := raw["projectId"].(string)
		if projectID == "" {
			err = fmt.Errorf("projectId is required")
			break
		}
		result, err = vercelCall(http.MethodPost, "/v10/projects/"+url.PathEscape(projectID)+"/domains", raw, token)
	case "list-projects":
		path := "/v10/projects"
		if teamID != "" {
			path += "?teamId=" + url.QueryEscape(teamID)
		}
		result, err = vercelCall(http.MethodGet, path, nil, token)
	case "get-project":
		projectID, _ := raw["projectId"].(string)
		if projectID == "" {
			err = fmt.Errorf("projectId is required")
			break
		}
		result, err = vercelCall(http.MethodGet, "/v10/projects/"+url.PathEscape(projectID), nil, token)
	default:
		err = fmt.Errorf("unknown Vercel operation: %s", operation)
	}

	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success":   false,
			"operation": operation,
			"error":     err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"success":   true,
		"operation": operation,
		"data":      result,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func vercelCreateProject(params map[string]interface{}, token, teamID string) (interface{}, error) {
	name, _ := params["name"].(string)
	gitRepository := params["gitRepository"]
	if name == "" || gitRepository == nil {
		return nil, fmt.Errorf("name and gitRepository are required for project creation")
	}

	body := map[string]interface{}{
		"name":            name,
		"gitRepository":   gitRepository,
		"framework":       withDefault(params, "framework", "nextjs"),
		"buildCommand":    withDefault(params, "buildCommand", "npm run build"),
		"outputDirectory": withDefault(params, "outputDirectory", ".next"),
		"installCommand":  withDefault(params, "installCommand", "npm install"),
		"devCommand":      withDefault(params, "devCommand", "npm run dev"),
	}

	path := "/v10/projects"
	if teamID != "" {
		path += "?teamId=" + url.QueryEscape(teamID)
	}
	return vercelCall(http.MethodPost, path, body, token)
}

func vercelSetEnvVars(params map[string]interface{}, token string) (interface{}, error) {
	projectID, _ := params["projectId"].(string)
	envVars, _ := params["envVars"].(map[string]interface{})
	if projectID == "" || len(envVars) == 0 {
		return nil, fmt.Errorf("projectId and envVars are required")
	}

	entries := make([]map[string]interface{}, 0, len(envVars))
	for k, v := range envVars {
		entries = append(entries, map[string]interface{}{
			"key":    k,
			"value":  v,
			"type":   "encrypted",
			"target": []string{"production", "preview", "development"},
		})
	}
	return vercelCall(http.MethodPost, "/v10/projects/"+url.PathEscape(projectID)+"/env?upsert=true", entries, token)
}

func withDefault(params map[string]interface{}, key, def string) interface{} {
	if v, ok := params[key]; ok && v != "" {
		return v
	}
	return def
}

func vercelCall(method, path string, body interface{}, token string) (interface{}, error) {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, vercelAPIBase+path, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := vercelClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil, err
	}

	var decoded interface{}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &decoded); err != nil {
			decoded = string(raw)
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if m, ok := decoded.(map[string]interface{}); ok {
			if e, ok := m["error"].(map[string]interface{}); ok {
				if msg, ok := e["message"].(string); ok {
					return nil, fmt.Errorf("Vercel API error: %s", msg)
				}
			}
		}
		return nil, fmt.Errorf("Vercel API error: %s", resp.Status)
	}
	return decoded, nil
}
