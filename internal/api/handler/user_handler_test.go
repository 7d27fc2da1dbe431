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

type stubUserService struct {
	listFn       func(ctx context.Context) ([]*domain.User, error)
	createFn     func(ctx context.Context, actor ports.Actor, in ports.CreateUserInput) (*domain.User, error)
	updateFn     func(ctx context.Context, actor ports.Actor, id int, in ports.UpdateUserInput) error
	deactivateFn func(ctx context.Context, actor ports.Actor, id int) error
}

func (s *stubUserService) List(ctx context.Context) ([]*domain.User, error) {
	return s.listFn(ctx)
}

func (s *stubUserService) Create(ctx context.Context, actor ports.Actor, in ports.CreateUserInput) (*domain.User, error) {
	return s.createFn(ctx, actor, in)
}

func (s *stubUserService) Update(ctx context.Context, actor ports.Actor, id int, in ports.UpdateUserInput) error {
	return s.updateFn(ctx, actor, id, in)
}

func (s *stubUserService) Deactivate(ctx context.Context, actor ports.Actor, id int) error {
	return s.deactivateFn(ctx, actor, id)
}

func TestUserHandler_List_Envelope(t *testing.T) {
	e := echo.New()
	stub := &stubUserService{
		listFn: func(ctx context.Context) ([]*domain.User, error) {
			return []*domain.User{{ID: 1, Username: "admin"}, {ID: 2, Username: "ops"}}, nil
		},
	}
	h := NewUserHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec)

	if err := h.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	users, ok := resp["users"].([]any)
	if !ok || len(users) != 2 {
		t.Fatalf("expected users envelope with 2 entries, got %+v", resp)
	}
	first, _ := users[0].(map[string]any)
	if _, leaked := first["password_hash"]; leaked {
		t.Fatal("password hash leaked in response")
	}
}

func TestUserHandler_Create(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()
	var gotInput ports.CreateUserInput
	stub := &stubUserService{
		createFn: func(ctx context.Context, actor ports.Actor, in ports.CreateUserInput) (*domain.User, error) {
			gotInput = in
			return &domain.User{ID: 5, Username: in.Username, Role: in.Role, IsActive: true}, nil
		},
	}
	h := NewUserHandler(stub)

	body := `{"name":"Ops Person","email":"ops@geb.com","username":"ops","password":"secret1","role":"operator"}`
	req := httptest.NewRequest(http.MethodPost, "/api/users", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec)

	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if gotInput.Username != "ops" || gotInput.Role != domain.RoleOperator {
		t.Fatalf("input not forwarded: %+v", gotInput)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["success"] != true || resp["user_id"] != float64(5) {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if resp["message"] != "User created successfully" {
		t.Fatalf("unexpected message: %v", resp["message"])
	}
}

func TestUserHandler_Create_BadRole(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()
	h := NewUserHandler(&stubUserService{})

	body := `{"name":"x","email":"x@geb.com","username":"x","password":"secret1","role":"superuser"}`
	req := httptest.NewRequest(http.MethodPost, "/api/users", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec)

	err := h.Create(c)
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestUserHandler_Create_MissingFields(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()
	h := NewUserHandler(&stubUserService{})

	req := httptest.NewRequest(http.MethodPost, "/api/users", strings.NewReader(`{"name":"x"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec)

	err := h.Create(c)
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestUserHandler_Update_Ack(t *testing.T) {
	e := echo.New()
	var gotID int
	stub := &stubUserService{
		updateFn: func(ctx context.Context, actor ports.Actor, id int, in ports.UpdateUserInput) error {
			gotID = id
			return nil
		},
	}
	h := NewUserHandler(stub)

	req := httptest.NewRequest(http.MethodPut, "/api/users/2", strings.NewReader(`{"role":"viewer"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec)
	c.SetParamNames("id")
	c.SetParamValues("2")

	if err := h.Update(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if gotID != 2 {
		t.Fatalf("id not forwarded: %d", gotID)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["success"] != true || resp["message"] != "User updated" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestUserHandler_Deactivate_Ack(t *testing.T) {
	e := echo.New()
	stub := &stubUserService{
		deactivateFn: func(ctx context.Context, actor ports.Actor, id int) error { return nil },
	}
	h := NewUserHandler(stub)

	req := httptest.NewRequest(http.MethodDelete, "/api/users/2", nil)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec)
	c.SetParamNames("id")
	c.SetParamValues("2")

	if err := h.Deactivate(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["success"] != true || resp["message"] != "User deactivated" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}
