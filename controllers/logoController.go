package controllers

import (
	"fmt"
	"regexp"
	"strings"

	"intake-backend/middlewares"

	"github.com/gofiber/fiber/v2"
)

// LogoInput is the wire DTO for POST /api/generate-logo.
type LogoInput struct {
	CompanyName string `json:"companyName" validate:"omitempty,max=200"`
	Description string `json:"description" validate:"required,min=3,max=2000"`
}

type logoConcept struct {
	Style string `json:"style"`
	SVG   string `json:"svg"`
	Color string `json:"color"`
}

var businessTypePalettes = map[string][]string{
	"technology":   {"#2563eb", "#7c3aed", "#0891b2"},
	"health":       {"#059669", "#10b981", "#0891b2"},
	"food":         {"#ea580c", "#f59e0b", "#84cc16"},
	"finance":      {"#1e40af", "#059669", "#374151"},
	"construction": {"#ea580c", "#dc2626", "#374151"},
	"creative":     {"#7c3aed", "#ec4899", "#f59e0b"},
	"business":     {"#2563eb", "#059669", "#dc2626"},
}

var businessTypeKeywords = []struct {
	kind     string
	keywords []string
}{
	{"technology", []string{"tech", "software", "ai"}},
	{"health", []string{"health", "medical", "fitness"}},
	{"food", []string{"food", "restaurant", "kitchen"}},
	{"finance", []string{"finance", "bank", "invest"}},
	{"construction", []string{"construction", "contractor", "build"}},
	{"creative", []string{"creative", "design", "art"}},
}

var companyNamePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)([A-Z][a-zA-Z\s&]+(?:LLC|Inc|Corp|Co|Company|Ltd|Limited))`),
	regexp.MustCompile(`([A-Z][a-zA-Z\s&]{2,20})\s+(?:is|specializes|provides|offers)`),
	regexp.MustCompile(`"([^"]+)"`),
	regexp.MustCompile(`([A-Z][a-zA-Z\s&]{2,15})`),
}

func extractCompanyName(description, providedName string) string {
	if name := strings.TrimSpace(providedName); name != "" {
		return name
	}
	for _, p := range companyNamePatterns {
		if m := p.FindStringSubmatch(description); len(m) > 1 {
			return strings.TrimSpace(m[1])
		}
	}
	return "Your Business"
}

func determineBusinessType(description string) string {
	d := strings.ToLower(description)
	for _, bt := range businessTypeKeywords {
		for _, kw := range bt.keywords {
			if strings.Contains(d, kw) {
				return bt.kind
			}
		}
	}
	return "business"
}

type logoStyle struct {
	name      string
	gradient  string // angle
	fontSize  int
	weight    string
	uppercase bool
}

var logoStyles = []logoStyle{
	{"minimalist", "135", 20, "400", true},
	{"modern", "45", 22, "600", false},
	{"classic", "180", 21, "500", false},
	{"bold", "90", 24, "700", true},
}

func renderLogoSVG(companyName string, style logoStyle, primary, secondary string) string {
	text := companyName
	if style.uppercase {
		text = strings.ToUpper(text)
	}
	return fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" width="300" height="160" viewBox="0 0 300 160">
  <defs>
    <linearGradient id="bg" gradientTransform="rotate(%s)">
      <stop offset="0%%" stop-color="%s"/>
      <stop offset="100%%" stop-color="%s"/>
    </linearGradient>
  </defs>
  <rect width="300" height="160" rx="12" fill="url(#bg)"/>
  <circle cx="150" cy="58" r="24" fill="none" stroke="#ffffff" stroke-width="2" opacity="0.8"/>
  <text x="150" y="125" text-anchor="middle" fill="#ffffff" font-family="Arial, sans-serif" font-size="%d" font-weight="%s" letter-spacing="1.5">%s</text>
</svg>`, style.gradient, primary, secondary, style.fontSize, style.weight, text)
}

// GenerateLogo handles POST /api/generate-logo: derives a company name and an
// industry from the free-text description and returns four SVG logo concepts.
func GenerateLogo(c *fiber.Ctx) error {
	var input LogoInput
	if err := middlewares.BindAndValidate(c, &input); err != nil {
		return err
	}

	companyName := extractCompanyName(input.Description, input.CompanyName)
	businessType := determineBusinessType(input.Description)
	palette := businessTypePalettes[businessType]

	concepts := make([]logoConcept, 0, len(logoStyles))
	for i, style := range logoStyles {
		primary := palette[i%len(palette)]
		secondary := palette[(i+1)%len(palette)]
		concepts = append(concepts, logoConcept{
			Style: style.name,
			SVG:   renderLogoSVG(companyName, style, primary, secondary),
			Color: primary,
		})
	}

	return c.JSON(fiber.Map{
		"success":      true,
		"companyName":  companyName,
		"businessType": businessType,
		"logos":        concepts,
	})
}
