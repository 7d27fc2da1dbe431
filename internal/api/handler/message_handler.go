package handler

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/codeologic/whatsapp-dashboard/internal/core/domain"
	"github.com/codeologic/whatsapp-dashboard/internal/core/ports"
)

const defaultCampaignName = "Bulk Campaign"

// MessageHandler handles single sends, bulk campaigns and log queries.
type MessageHandler struct {
	service ports.MessageService
}

func NewMessageHandler(service ports.MessageService) *MessageHandler {
	return &MessageHandler{service: service}
}

// Send handles POST /api/messages/send.
//
// @Summary      Send a single message
// @Tags         messages
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      sendMessageRequest  true  "Message payload"
// @Success      200   {object}  sendMessageResponse
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/messages/send [post]
func (h *MessageHandler) Send(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req sendMessageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if req.Type == "" {
		req.Type = domain.MessageTypeTemplate
	}

	result, err := h.service.Send(c.Request().Context(), actor, ports.SendMessageInput{
		Phone:      req.Phone,
		Name:       req.Name,
		Type:       req.Type,
		TemplateID: req.TemplateID,
		Variables:  req.Variables,
		Text:       req.Text,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toSendMessageResponse(result))
}

// SendBulk handles POST /api/messages/bulk. The request is multipart form
// data: campaign_name, template_id, and either a recipients JSON array or an
// uploaded csv_file. An uploaded CSV replaces the recipients field entirely.
//
// @Summary      Send a bulk campaign
// @Tags         messages
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        campaign_name  formData  string  false  "Campaign name"
// @Param        template_id    formData  int     true   "Approved template id"
// @Param        recipients     formData  string  false  "JSON array of recipients"
// @Param        csv_file       formData  file    false  "CSV with phone, name, var1..var3 columns"
// @Success      200  {object}  bulkSendResponse
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/messages/bulk [post]
func (h *MessageHandler) SendBulk(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	campaignName := strings.TrimSpace(c.FormValue("campaign_name"))
	if campaignName == "" {
		campaignName = defaultCampaignName
	}

	templateID, err := strconv.Atoi(c.FormValue("template_id"))
	if err != nil {
		return domain.Invalid("Template ID required for bulk messaging")
	}

	var recipients []ports.BulkRecipient
	if raw := c.FormValue("recipients"); raw != "" {
		var payload []bulkRecipientPayload
		if err := json.Unmarshal([]byte(raw), &payload); err != nil {
			return domain.Invalid("Invalid recipients format")
		}
		for _, p := range payload {
			recipients = append(recipients, ports.BulkRecipient{
				Phone:     p.Phone,
				Name:      p.Name,
				Variables: coerceStrings(p.Variables),
			})
		}
	}

	if file, err := c.FormFile("csv_file"); err == nil && file != nil {
		src, err := file.Open()
		if err != nil {
			return domain.Invalid("Could not read CSV file")
		}
		defer src.Close()

		recipients, err = parseRecipientCSV(src)
		if err != nil {
			return domain.Invalid("Could not parse CSV file: %v", err)
		}
	}

	result, err := h.service.SendBulk(c.Request().Context(), actor, ports.BulkSendInput{
		CampaignName: campaignName,
		TemplateID:   templateID,
		Recipients:   recipients,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toBulkSendResponse(result))
}

// Logs handles GET /api/messages/logs with page, limit, status and phone
// query filters.
//
// @Summary      List message logs
// @Tags         messages
// @Produce      json
// @Security     BearerAuth
// @Param        page    query     int     false  "Page (default 1)"
// @Param        limit   query     int     false  "Page size (default 50)"
// @Param        status  query     string  false  "Exact status filter"
// @Param        phone   query     string  false  "Phone substring filter"
// @Success      200     {object}  logPageResponse
// @Router       /api/messages/logs [get]
func (h *MessageHandler) Logs(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	result, err := h.service.Logs(c.Request().Context(), ports.LogQuery{
		Page:   page,
		Limit:  limit,
		Status: c.QueryParam("status"),
		Phone:  c.QueryParam("phone"),
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, logPageResponse{
		Logs:  result.Logs,
		Total: result.Total,
		Page:  result.Page,
		Pages: result.Pages,
	})
}

// Campaigns handles GET /api/messages/campaigns.
//
// @Summary      List campaigns
// @Tags         messages
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  campaignListResponse
// @Router       /api/messages/campaigns [get]
func (h *MessageHandler) Campaigns(c echo.Context) error {
	campaigns, err := h.service.Campaigns(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, campaignListResponse{Campaigns: campaigns})
}

// Campaign handles GET /api/messages/campaigns/:id.
//
// @Summary      Campaign detail with recent logs
// @Tags         messages
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Campaign id"
// @Success      200  {object}  campaignDetailResponse
// @Failure      404  {object}  map[string]string
// @Router       /api/messages/campaigns/{id} [get]
func (h *MessageHandler) Campaign(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return domain.ErrCampaignNotFound
	}

	detail, err := h.service.Campaign(c.Request().Context(), id)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, campaignDetailResponse{
		Campaign: detail.Campaign,
		Logs:     detail.Logs,
	})
}

// parseRecipientCSV reads a recipients CSV. Header names are matched case
// insensitively; rows without a phone value are skipped.
func parseRecipientCSV(r io.Reader) ([]ports.BulkRecipient, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("missing header row")
	}

	phoneCol, nameCol := -1, -1
	varCols := make([]int, 0, 3)
	for i, col := range header {
		switch name := strings.ToLower(strings.TrimSpace(col)); name {
		case "phone":
			phoneCol = i
		case "name":
			nameCol = i
		case "var1", "var2", "var3", "variable1", "variable2", "variable3":
			varCols = append(varCols, i)
		}
	}
	if phoneCol < 0 {
		return nil, fmt.Errorf("missing phone column")
	}

	var recipients []ports.BulkRecipient
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if phoneCol >= len(row) {
			continue
		}
		phone := strings.TrimSpace(row[phoneCol])
		if phone == "" {
			continue
		}

		rec := ports.BulkRecipient{Phone: phone}
		if nameCol >= 0 && nameCol < len(row) {
			rec.Name = strings.TrimSpace(row[nameCol])
		}
		for _, vc := range varCols {
			if vc < len(row) {
				if v := strings.TrimSpace(row[vc]); v != "" {
					rec.Variables = append(rec.Variables, v)
				}
			}
		}
		recipients = append(recipients, rec)
	}
	return recipients, nil
}

func coerceStrings(values []any) []string {
	if len(values) == 0 {
		return nil
	}
	out := make([]string, 0, len(values))
	for _, v := range values {
		switch t := v.(type) {
		case string:
			out = append(out, t)
		case float64:
			out = append(out, strconv.FormatFloat(t, 'f', -1, 64))
		default:
			out = append(out, fmt.Sprint(t))
		}
	}
	return out
}
