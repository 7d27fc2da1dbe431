package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/codeologic/whatsapp-dashboard/internal/core/domain"
	"github.com/codeologic/whatsapp-dashboard/internal/core/ports"
)

type stubTemplateService struct {
	listFn    func(ctx context.Context, category, status string) ([]*domain.Template, error)
	getFn     func(ctx context.Context, id int) (*domain.Template, error)
	createFn  func(ctx context.Context, actor ports.Actor, in ports.CreateTemplateInput) (*domain.Template, error)
	updateFn  func(ctx context.Context, actor ports.Actor, id int, in ports.UpdateTemplateInput) error
	deleteFn  func(ctx context.Context, actor ports.Actor, id int) error
	approveFn func(ctx context.Context, actor ports.Actor, id int) error
}

func (s *stubTemplateService) List(ctx context.Context, category, status string) ([]*domain.Template, error) {
	return s.listFn(ctx, category, status)
}

func (s *stubTemplateService) Get(ctx context.Context, id int) (*domain.Template, error) {
	return s.getFn(ctx, id)
}

func (s *stubTemplateService) Create(ctx context.Context, actor ports.Actor, in ports.CreateTemplateInput) (*domain.Template, error) {
	return s.createFn(ctx, actor, in)
}

func (s *stubTemplateService) Update(ctx context.Context, actor ports.Actor, id int, in ports.UpdateTemplateInput) error {
	return s.updateFn(ctx, actor, id, in)
}

func (s *stubTemplateService) Delete(ctx context.Context, actor ports.Actor, id int) error {
	return s.deleteFn(ctx, actor, id)
}

func (s *stubTemplateService) Approve(ctx context.Context, actor ports.Actor, id int) error {
	return s.approveFn(ctx, actor, id)
}

func TestTemplateHandler_List_Envelope(t *testing.T) {
	e := echo.New()
	stub := &stubTemplateService{
		listFn: func(ctx context.Context, category, status string) ([]*domain.Template, error) {
			return []*domain.Template{{ID: 1, Name: "service_update"}, {ID: 2, Name: "group_invite"}}, nil
		},
	}
	h := NewTemplateHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/api/templates", nil)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec)

	if err := h.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	templates, ok := resp["templates"].([]any)
	if !ok || len(templates) != 2 {
		t.Fatalf("expected templates envelope with 2 entries, got %+v", resp)
	}
}

func TestTemplateHandler_Get_Envelope(t *testing.T) {
	e := echo.New()
	stub := &stubTemplateService{
		getFn: func(ctx context.Context, id int) (*domain.Template, error) {
			return &domain.Template{ID: id, Name: "welcome_message"}, nil
		},
	}
	h := NewTemplateHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/api/templates/4", nil)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec)
	c.SetParamNames("id")
	c.SetParamValues("4")

	if err := h.Get(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	tmpl, ok := resp["template"].(map[string]any)
	if !ok || tmpl["name"] != "welcome_message" {
		t.Fatalf("expected template envelope, got %+v", resp)
	}
}

func TestTemplateHandler_Create(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()
	var gotInput ports.CreateTemplateInput
	stub := &stubTemplateService{
		createFn: func(ctx context.Context, actor ports.Actor, in ports.CreateTemplateInput) (*domain.Template, error) {
			gotInput = in
			return &domain.Template{ID: 7, Name: "order_update", Status: domain.TemplateStatusPending}, nil
		},
	}
	h := NewTemplateHandler(stub)

	// Lowercase category is accepted and canonicalized before validation.
	body := `{"name":"Order Update","category":"utility","body":"Your order {{1}} shipped"}`
	req := httptest.NewRequest(http.MethodPost, "/api/templates", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec)

	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if gotInput.Category != "UTILITY" {
		t.Fatalf("category not canonicalized: %q", gotInput.Category)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["success"] != true || resp["template_id"] != float64(7) {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if resp["message"] != "Template created (pending approval)" {
		t.Fatalf("unexpected message: %v", resp["message"])
	}
}

func TestTemplateHandler_Create_MissingBody(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()
	stub := &stubTemplateService{
		createFn: func(ctx context.Context, actor ports.Actor, in ports.CreateTemplateInput) (*domain.Template, error) {
			t.Fatal("should not be called")
			return nil, nil
		},
	}
	h := NewTemplateHandler(stub)

	req := httptest.NewRequest(http.MethodPost, "/api/templates", strings.NewReader(`{"name":"x"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec)

	err := h.Create(c)
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestTemplateHandler_Create_BadCategory(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()
	h := NewTemplateHandler(&stubTemplateService{})

	body := `{"name":"x","category":"PROMO","body":"hello"}`
	req := httptest.NewRequest(http.MethodPost, "/api/templates", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec)

	err := h.Create(c)
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestTemplateHandler_Update_Ack(t *testing.T) {
	e := echo.New()
	newBody := "updated"
	var gotID int
	stub := &stubTemplateService{
		updateFn: func(ctx context.Context, actor ports.Actor, id int, in ports.UpdateTemplateInput) error {
			gotID = id
			if in.Body == nil || *in.Body != newBody {
				t.Fatalf("body not forwarded: %+v", in)
			}
			return nil
		},
	}
	h := NewTemplateHandler(stub)

	req := httptest.NewRequest(http.MethodPut, "/api/templates/3", strings.NewReader(`{"body":"updated"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec)
	c.SetParamNames("id")
	c.SetParamValues("3")

	if err := h.Update(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if gotID != 3 {
		t.Fatalf("id not forwarded: %d", gotID)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["success"] != true || resp["message"] != "Template updated" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestTemplateHandler_ApproveAndDelete_Ack(t *testing.T) {
	e := echo.New()
	stub := &stubTemplateService{
		approveFn: func(ctx context.Context, actor ports.Actor, id int) error { return nil },
		deleteFn:  func(ctx context.Context, actor ports.Actor, id int) error { return nil },
	}
	h := NewTemplateHandler(stub)

	run := func(fn func(echo.Context) error, method, target string) map[string]any {
		req := httptest.NewRequest(method, target, nil)
		rec := httptest.NewRecorder()
		c := authedContext(e, req, rec)
		c.SetParamNames("id")
		c.SetParamValues("2")
		if err := fn(c); err != nil {
			t.Fatalf("handler error: %v", err)
		}
		var resp map[string]any
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("invalid json: %v", err)
		}
		return resp
	}

	if resp := run(h.Approve, http.MethodPost, "/api/templates/2/approve"); resp["message"] != "Template approved" {
		t.Fatalf("unexpected approve response: %+v", resp)
	}
	if resp := run(h.Delete, http.MethodDelete, "/api/templates/2"); resp["message"] != "Template deleted" {
		t.Fatalf("unexpected delete response: %+v", resp)
	}
}
