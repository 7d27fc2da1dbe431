package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/codeologic/whatsapp-dashboard/internal/core/domain"
	"github.com/codeologic/whatsapp-dashboard/internal/core/ports"
)

// AnalyticsHandler serves the dashboard overview and the activity audit
// trail.
type AnalyticsHandler struct {
	service ports.AnalyticsService
}

func NewAnalyticsHandler(service ports.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{service: service}
}

type overviewStatsResponse struct {
	TotalSent      int     `json:"total_sent"`
	TotalDelivered int     `json:"total_delivered"`
	TotalRead      int     `json:"total_read"`
	TotalFailed    int     `json:"total_failed"`
	TotalMessages  int     `json:"total_messages"`
	DeliveryRate   float64 `json:"delivery_rate"`
	ReadRate       float64 `json:"read_rate"`
	TotalTemplates int     `json:"total_templates"`
	TotalCampaigns int     `json:"total_campaigns"`
	ActiveUsers    int     `json:"active_users"`
}

type dailyStatResponse struct {
	Date   string `json:"date"`
	Sent   int    `json:"sent"`
	Failed int    `json:"failed"`
}

type overviewResponse struct {
	Stats           overviewStatsResponse `json:"stats"`
	DailyChart      []dailyStatResponse   `json:"daily_chart"`
	RecentMessages  []*domain.MessageLog  `json:"recent_messages"`
	RecentCampaigns []*domain.Campaign    `json:"recent_campaigns"`
}

type activityPageResponse struct {
	Logs  []*domain.ActivityLog `json:"logs"`
	Total int                   `json:"total"`
	Page  int                   `json:"page"`
}

// Overview handles GET /api/analytics/overview.
//
// @Summary      Dashboard overview
// @Tags         analytics
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  overviewResponse
// @Router       /api/analytics/overview [get]
func (h *AnalyticsHandler) Overview(c echo.Context) error {
	overview, err := h.service.Overview(c.Request().Context())
	if err != nil {
		return err
	}

	chart := make([]dailyStatResponse, 0, len(overview.DailyChart))
	for _, d := range overview.DailyChart {
		chart = append(chart, dailyStatResponse{Date: d.Date, Sent: d.Sent, Failed: d.Failed})
	}

	return c.JSON(http.StatusOK, overviewResponse{
		Stats: overviewStatsResponse{
			TotalSent:      overview.Stats.TotalSent,
			TotalDelivered: overview.Stats.TotalDelivered,
			TotalRead:      overview.Stats.TotalRead,
			TotalFailed:    overview.Stats.TotalFailed,
			TotalMessages:  overview.Stats.TotalMessages,
			DeliveryRate:   overview.Stats.DeliveryRate,
			ReadRate:       overview.Stats.ReadRate,
			TotalTemplates: overview.Stats.TotalTemplates,
			TotalCampaigns: overview.Stats.TotalCampaigns,
			ActiveUsers:    overview.Stats.ActiveUsers,
		},
		DailyChart:      chart,
		RecentMessages:  overview.RecentMessages,
		RecentCampaigns: overview.RecentCampaigns,
	})
}

// ActivityLogs handles GET /api/analytics/activity-logs with page and limit
// query params.
//
// @Summary      Activity audit trail
// @Tags         analytics
// @Produce      json
// @Security     BearerAuth
// @Param        page   query     int  false  "Page (default 1)"
// @Param        limit  query     int  false  "Page size (default 50)"
// @Success      200    {object}  activityPageResponse
// @Router       /api/analytics/activity-logs [get]
func (h *AnalyticsHandler) ActivityLogs(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	result, err := h.service.ActivityLogs(c.Request().Context(), page, limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, activityPageResponse{
		Logs:  result.Logs,
		Total: result.Total,
		Page:  result.Page,
	})
}
