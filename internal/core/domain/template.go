package domain

import (
	"strings"
	"time"
)

const (
	CategoryUtility        = "UTILITY"
	CategoryMarketing      = "MARKETING"
	CategoryAuthentication = "AUTHENTICATION"
)

const (
	TemplateStatusPending  = "pending"
	TemplateStatusApproved = "approved"
)

// ValidCategory reports whether category is one of the Meta template categories.
func ValidCategory(category string) bool {
	return category == CategoryUtility || category == CategoryMarketing || category == CategoryAuthentication
}

// NormalizeTemplateName lower-cases a template name and replaces spaces with
// underscores, matching the naming rules Meta enforces on template names.
func NormalizeTemplateName(name string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), " ", "_")
}

// Template is a reusable parametrized message body. The body may contain
// positional placeholders in the form {{1}}, {{2}}, ...
type Template struct {
	ID         int       `json:"id"`
	Name       string    `json:"name"`
	Category   string    `json:"category"`
	Language   string    `json:"language"`
	Body       string    `json:"body"`
	Header     *string   `json:"header"`
	Footer     *string   `json:"footer"`
	ButtonText *string   `json:"button_text"`
	ButtonURL  *string   `json:"button_url"`
	Status     string    `json:"status"`
	CreatedBy  int       `json:"created_by"`
	CreatedAt  time.Time `json:"created_at"`
}
