package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/codeologic/whatsapp-dashboard/internal/core/domain"
	"github.com/codeologic/whatsapp-dashboard/internal/core/ports"
)

// TemplateService implements template CRUD and approval.
type TemplateService struct {
	templates ports.TemplateRepository
	activity  activityRecorder
	log       zerolog.Logger
}

func NewTemplateService(templates ports.TemplateRepository, activity ports.ActivityRepository, log zerolog.Logger) *TemplateService {
	return &TemplateService{
		templates: templates,
		activity:  activityRecorder{repo: activity, log: log},
		log:       log,
	}
}

func (s *TemplateService) List(ctx context.Context, category, status string) ([]*domain.Template, error) {
	return s.templates.List(ctx, category, status)
}

func (s *TemplateService) Get(ctx context.Context, id int) (*domain.Template, error) {
	return s.templates.FindByID(ctx, id)
}

// Create normalizes the name, rejects duplicates, and stores the template in
// "pending" state awaiting admin approval.
func (s *TemplateService) Create(ctx context.Context, actor ports.Actor, in ports.CreateTemplateInput) (*domain.Template, error) {
	name := domain.NormalizeTemplateName(in.Name)
	category := strings.ToUpper(strings.TrimSpace(in.Category))
	body := strings.TrimSpace(in.Body)

	if name == "" || body == "" {
		return nil, domain.Invalid("Template name and body are required")
	}
	if !domain.ValidCategory(category) {
		return nil, domain.Invalid("Category must be UTILITY, MARKETING, or AUTHENTICATION")
	}
	if _, err := s.templates.FindByName(ctx, name); err == nil {
		return nil, domain.TemplateNameExists(name)
	}

	language := strings.TrimSpace(in.Language)
	if language == "" {
		language = "en"
	}

	tmpl := &domain.Template{
		Name:       name,
		Category:   category,
		Language:   language,
		Body:       body,
		Header:     optional(in.Header),
		Footer:     optional(in.Footer),
		ButtonText: optional(in.ButtonText),
		ButtonURL:  optional(in.ButtonURL),
		Status:     domain.TemplateStatusPending,
		CreatedBy:  actor.UserID,
	}

	created, err := s.templates.Create(ctx, tmpl)
	if err != nil {
		return nil, err
	}

	s.activity.record(ctx, actor, domain.ActionCreateTemplate, fmt.Sprintf("Template: %s", name))
	return created, nil
}

// Update applies a partial update. Only admins may change the approval
// status.
func (s *TemplateService) Update(ctx context.Context, actor ports.Actor, id int, in ports.UpdateTemplateInput) error {
	tmpl, err := s.templates.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if in.Status != nil {
		if actor.Role != domain.RoleAdmin {
			return domain.ErrForbidden
		}
		if *in.Status != domain.TemplateStatusPending && *in.Status != domain.TemplateStatusApproved {
			return domain.Invalid("Status must be pending or approved")
		}
		tmpl.Status = *in.Status
	}
	if in.Body != nil {
		tmpl.Body = *in.Body
	}
	if in.Header != nil {
		tmpl.Header = optional(*in.Header)
	}
	if in.Footer != nil {
		tmpl.Footer = optional(*in.Footer)
	}
	if in.ButtonText != nil {
		tmpl.ButtonText = optional(*in.ButtonText)
	}
	if in.ButtonURL != nil {
		tmpl.ButtonURL = optional(*in.ButtonURL)
	}

	if err := s.templates.Update(ctx, tmpl); err != nil {
		return err
	}
	s.activity.record(ctx, actor, domain.ActionUpdateTemplate, fmt.Sprintf("Template ID: %d", id))
	return nil
}

// Delete removes a template permanently.
func (s *TemplateService) Delete(ctx context.Context, actor ports.Actor, id int) error {
	tmpl, err := s.templates.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.templates.Delete(ctx, id); err != nil {
		return err
	}
	s.activity.record(ctx, actor, domain.ActionDeleteTemplate, fmt.Sprintf("Template: %s", tmpl.Name))
	return nil
}

func (s *TemplateService) Approve(ctx context.Context, actor ports.Actor, id int) error {
	tmpl, err := s.templates.FindByID(ctx, id)
	if err != nil {
		return err
	}
	tmpl.Status = domain.TemplateStatusApproved
	if err := s.templates.Update(ctx, tmpl); err != nil {
		return err
	}
	s.activity.record(ctx, actor, domain.ActionApproveTemplate, fmt.Sprintf("Template ID: %d", id))
	return nil
}

// optional trims s and returns nil for the empty string.
func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
