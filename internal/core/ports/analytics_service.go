package ports

import (
	"context"

	"github.com/codeologic/whatsapp-dashboard/internal/core/domain"
)

// DailyStat is one bucket of the 7-day send histogram.
type DailyStat struct {
	Date   string
	Sent   int
	Failed int
}

// OverviewStats aggregates message, template, campaign and user counts.
type OverviewStats struct {
	TotalSent      int
	TotalDelivered int
	TotalRead      int
	TotalFailed    int
	TotalMessages  int
	DeliveryRate   float64
	ReadRate       float64
	TotalTemplates int
	TotalCampaigns int
	ActiveUsers    int
}

// Overview is the dashboard payload.
type Overview struct {
	Stats           OverviewStats
	DailyChart      []DailyStat
	RecentMessages  []*domain.MessageLog
	RecentCampaigns []*domain.Campaign
}

// ActivityPage is one page of the audit trail.
type ActivityPage struct {
	Logs  []*domain.ActivityLog
	Total int
	Page  int
}

// AnalyticsService computes dashboard aggregates. The daily histogram is a
// linear scan over all logs; volumes are expected to stay small.
type AnalyticsService interface {
	Overview(ctx context.Context) (*Overview, error)
	ActivityLogs(ctx context.Context, page, limit int) (*ActivityPage, error)
}
