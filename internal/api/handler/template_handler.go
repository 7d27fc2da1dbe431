package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/codeologic/whatsapp-dashboard/internal/core/domain"
	"github.com/codeologic/whatsapp-dashboard/internal/core/ports"
)

// TemplateHandler handles template CRUD and approval.
type TemplateHandler struct {
	service ports.TemplateService
}

func NewTemplateHandler(service ports.TemplateService) *TemplateHandler {
	return &TemplateHandler{service: service}
}

type createTemplateRequest struct {
	Name       string `json:"name" validate:"required"`
	Category   string `json:"category" validate:"omitempty,oneof=UTILITY MARKETING AUTHENTICATION"`
	Language   string `json:"language"`
	Body       string `json:"body" validate:"required"`
	Header     string `json:"header"`
	Footer     string `json:"footer"`
	ButtonText string `json:"button_text"`
	ButtonURL  string `json:"button_url"`
}

type updateTemplateRequest struct {
	Body       *string `json:"body"`
	Header     *string `json:"header"`
	Footer     *string `json:"footer"`
	ButtonText *string `json:"button_text"`
	ButtonURL  *string `json:"button_url"`
	Status     *string `json:"status"`
}

type templateListResponse struct {
	Templates []*domain.Template `json:"templates"`
}

type templateResponse struct {
	Template *domain.Template `json:"template"`
}

type createTemplateResponse struct {
	Success    bool   `json:"success"`
	TemplateID int    `json:"template_id"`
	Message    string `json:"message"`
}

// List handles GET /api/templates with optional category and status filters.
//
// @Summary      List templates
// @Tags         templates
// @Produce      json
// @Security     BearerAuth
// @Param        category  query     string  false  "Category filter"
// @Param        status    query     string  false  "Status filter"
// @Success      200       {object}  templateListResponse
// @Router       /api/templates [get]
func (h *TemplateHandler) List(c echo.Context) error {
	templates, err := h.service.List(c.Request().Context(), c.QueryParam("category"), c.QueryParam("status"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, templateListResponse{Templates: templates})
}

// Get handles GET /api/templates/:id.
//
// @Summary      Get a template
// @Tags         templates
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Template id"
// @Success      200  {object}  templateResponse
// @Failure      404  {object}  map[string]string
// @Router       /api/templates/{id} [get]
func (h *TemplateHandler) Get(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return domain.ErrTemplateNotFound
	}
	tmpl, err := h.service.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, templateResponse{Template: tmpl})
}

// Create handles POST /api/templates. New templates start pending.
//
// @Summary      Create a template
// @Tags         templates
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createTemplateRequest  true  "Template fields"
// @Success      200   {object}  createTemplateResponse
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /api/templates [post]
func (h *TemplateHandler) Create(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req createTemplateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	// Category arrives in any case; membership is checked on the canonical
	// uppercase form.
	req.Category = strings.ToUpper(strings.TrimSpace(req.Category))
	if err := c.Validate(&req); err != nil {
		return err
	}

	tmpl, err := h.service.Create(c.Request().Context(), actor, ports.CreateTemplateInput{
		Name:       req.Name,
		Category:   req.Category,
		Language:   req.Language,
		Body:       req.Body,
		Header:     req.Header,
		Footer:     req.Footer,
		ButtonText: req.ButtonText,
		ButtonURL:  req.ButtonURL,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, createTemplateResponse{
		Success:    true,
		TemplateID: tmpl.ID,
		Message:    "Template created (pending approval)",
	})
}

// Update handles PUT /api/templates/:id. Status changes require an admin
// actor; the service enforces that.
//
// @Summary      Update a template
// @Tags         templates
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                    true  "Template id"
// @Param        body  body      updateTemplateRequest  true  "Fields to update"
// @Success      200   {object}  statusResponse
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/templates/{id} [put]
func (h *TemplateHandler) Update(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return domain.ErrTemplateNotFound
	}

	var req updateTemplateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	if err := h.service.Update(c.Request().Context(), actor, id, ports.UpdateTemplateInput{
		Body:       req.Body,
		Header:     req.Header,
		Footer:     req.Footer,
		ButtonText: req.ButtonText,
		ButtonURL:  req.ButtonURL,
		Status:     req.Status,
	}); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, statusResponse{Success: true, Message: "Template updated"})
}

// Delete handles DELETE /api/templates/:id (admin only).
//
// @Summary      Delete a template
// @Tags         templates
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Template id"
// @Success      200  {object}  statusResponse
// @Failure      404  {object}  map[string]string
// @Router       /api/templates/{id} [delete]
func (h *TemplateHandler) Delete(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return domain.ErrTemplateNotFound
	}
	if err := h.service.Delete(c.Request().Context(), actor, id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, statusResponse{Success: true, Message: "Template deleted"})
}

// Approve handles POST /api/templates/:id/approve (admin only).
//
// @Summary      Approve a template
// @Tags         templates
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Template id"
// @Success      200  {object}  statusResponse
// @Failure      404  {object}  map[string]string
// @Router       /api/templates/{id}/approve [post]
func (h *TemplateHandler) Approve(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return domain.ErrTemplateNotFound
	}
	if err := h.service.Approve(c.Request().Context(), actor, id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, statusResponse{Success: true, Message: "Template approved"})
}
