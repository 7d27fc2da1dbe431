package service

import (
	"context"
	"math"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/codeologic/whatsapp-dashboard/internal/core/domain"
	"github.com/codeologic/whatsapp-dashboard/internal/core/ports"
)

const (
	recentMessagesLimit  = 10
	recentCampaignsLimit = 5
	histogramDays        = 7
)

// AnalyticsService computes dashboard aggregates with linear scans over the
// in-memory collections. Acceptable only because volumes stay small.
type AnalyticsService struct {
	messages  ports.MessageRepository
	templates ports.TemplateRepository
	campaigns ports.CampaignRepository
	users     ports.UserRepository
	activity  ports.ActivityRepository
	log       zerolog.Logger
}

func NewAnalyticsService(
	messages ports.MessageRepository,
	templates ports.TemplateRepository,
	campaigns ports.CampaignRepository,
	users ports.UserRepository,
	activity ports.ActivityRepository,
	log zerolog.Logger,
) *AnalyticsService {
	return &AnalyticsService{
		messages:  messages,
		templates: templates,
		campaigns: campaigns,
		users:     users,
		activity:  activity,
		log:       log,
	}
}

func (s *AnalyticsService) Overview(ctx context.Context) (*ports.Overview, error) {
	logs, err := s.messages.All(ctx)
	if err != nil {
		return nil, err
	}

	var stats ports.OverviewStats
	stats.TotalMessages = len(logs)
	for _, m := range logs {
		switch m.Status {
		case domain.MessageStatusSent:
			stats.TotalSent++
		case domain.MessageStatusDelivered:
			stats.TotalDelivered++
		case domain.MessageStatusRead:
			stats.TotalRead++
		case domain.MessageStatusFailed:
			stats.TotalFailed++
		}
	}
	if stats.TotalSent > 0 {
		stats.DeliveryRate = round1(float64(stats.TotalDelivered) / float64(stats.TotalSent) * 100)
		stats.ReadRate = round1(float64(stats.TotalRead) / float64(stats.TotalSent) * 100)
	}

	if stats.TotalTemplates, err = s.templates.CountApproved(ctx); err != nil {
		return nil, err
	}
	if stats.TotalCampaigns, err = s.campaigns.Count(ctx); err != nil {
		return nil, err
	}
	if stats.ActiveUsers, err = s.users.CountActive(ctx); err != nil {
		return nil, err
	}

	overview := &ports.Overview{
		Stats:          stats,
		DailyChart:     dailyChart(logs, time.Now().UTC()),
		RecentMessages: recentMessages(logs, recentMessagesLimit),
	}

	campaigns, err := s.campaigns.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(campaigns) > recentCampaignsLimit {
		campaigns = campaigns[:recentCampaignsLimit]
	}
	overview.RecentCampaigns = campaigns

	return overview, nil
}

func (s *AnalyticsService) ActivityLogs(ctx context.Context, page, limit int) (*ports.ActivityPage, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 50
	}
	logs, total, err := s.activity.List(ctx, page, limit)
	if err != nil {
		return nil, err
	}
	return &ports.ActivityPage{Logs: logs, Total: total, Page: page}, nil
}

// dailyChart buckets sends and failures into the last seven days, keyed by
// the YYYY-MM-DD day of each log's sent timestamp.
func dailyChart(logs []*domain.MessageLog, now time.Time) []ports.DailyStat {
	chart := make([]ports.DailyStat, 0, histogramDays)
	for i := histogramDays - 1; i >= 0; i-- {
		day := now.AddDate(0, 0, -i).Format("2006-01-02")
		stat := ports.DailyStat{Date: day}
		for _, m := range logs {
			if m.SentAt.UTC().Format("2006-01-02") != day {
				continue
			}
			stat.Sent++
			if m.Status == domain.MessageStatusFailed {
				stat.Failed++
			}
		}
		chart = append(chart, stat)
	}
	return chart
}

func recentMessages(logs []*domain.MessageLog, limit int) []*domain.MessageLog {
	sorted := make([]*domain.MessageLog, len(logs))
	copy(sorted, logs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].SentAt.After(sorted[j].SentAt)
	})
	if len(sorted) > limit {
		sorted = sorted[:limit]
	}
	return sorted
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
