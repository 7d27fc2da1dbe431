package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/codeologic/whatsapp-dashboard/internal/core/domain"
	"github.com/codeologic/whatsapp-dashboard/internal/core/ports"
)

// activityRecorder appends audit trail entries. Failures are logged and
// swallowed: auditing must never fail the operation being audited.
type activityRecorder struct {
	repo ports.ActivityRepository
	log  zerolog.Logger
}

func (r *activityRecorder) record(ctx context.Context, actor ports.Actor, action, details string) {
	entry := &domain.ActivityLog{
		UserID:    actor.UserID,
		Username:  actor.Username,
		Action:    action,
		Timestamp: time.Now().UTC(),
	}
	if details != "" {
		entry.Details = &details
	}
	if actor.IP != "" {
		ip := actor.IP
		entry.IPAddress = &ip
	}

	if err := r.repo.Append(ctx, entry); err != nil {
		r.log.Warn().Err(err).Str("action", action).Msg("failed to append activity log")
	}
}
