package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/codeologic/whatsapp-dashboard/internal/api/metrics"
	"github.com/codeologic/whatsapp-dashboard/internal/core/domain"
	"github.com/codeologic/whatsapp-dashboard/internal/core/ports"
)

const campaignDetailLogLimit = 100

// MessageService implements single and bulk sending plus webhook-driven
// status updates.
type MessageService struct {
	gateway   ports.MessagingGateway
	templates ports.TemplateRepository
	messages  ports.MessageRepository
	campaigns ports.CampaignRepository
	activity  activityRecorder
	log       zerolog.Logger
}

func NewMessageService(
	gateway ports.MessagingGateway,
	templates ports.TemplateRepository,
	messages ports.MessageRepository,
	campaigns ports.CampaignRepository,
	activity ports.ActivityRepository,
	log zerolog.Logger,
) *MessageService {
	return &MessageService{
		gateway:   gateway,
		templates: templates,
		messages:  messages,
		campaigns: campaigns,
		activity:  activityRecorder{repo: activity, log: log},
		log:       log,
	}
}

// Send dispatches one message and records a MessageLog regardless of outcome.
// Gateway failures do not fail the request: they come back as a failed result.
func (s *MessageService) Send(ctx context.Context, actor ports.Actor, in ports.SendMessageInput) (*ports.SendMessageResult, error) {
	phone := strings.TrimSpace(in.Phone)
	if phone == "" {
		return nil, domain.Invalid("Phone number required")
	}
	if !s.gateway.ValidatePhone(phone) {
		return nil, domain.Invalid("Invalid phone number: %s", phone)
	}

	var (
		result       ports.GatewayResult
		templateID   *int
		templateName *string
		bodyPreview  = domain.Preview(in.Text)
	)

	switch {
	case in.Type == domain.MessageTypeTemplate && in.TemplateID != nil:
		tmpl, err := s.templates.FindByID(ctx, *in.TemplateID)
		if err != nil {
			return nil, err
		}
		templateID = in.TemplateID
		templateName = &tmpl.Name
		bodyPreview = domain.Preview(tmpl.Body)

		buttonURL := ""
		if tmpl.ButtonURL != nil {
			buttonURL = *tmpl.ButtonURL
		}
		result = s.gateway.SendTemplate(ctx, phone, tmpl.Name, tmpl.Language, in.Variables, buttonURL)

	case in.Type == domain.MessageTypeText && in.Text != "":
		result = s.gateway.SendText(ctx, phone, in.Text)

	default:
		return nil, domain.Invalid("Provide template_id or text body")
	}

	status := domain.MessageStatusSent
	if !result.Success {
		status = domain.MessageStatusFailed
	}

	log := &domain.MessageLog{
		RecipientPhone: phone,
		MessageType:    in.Type,
		TemplateID:     templateID,
		TemplateName:   templateName,
		BodyPreview:    bodyPreview,
		Status:         status,
		SentBy:         actor.UserID,
		SentAt:         time.Now().UTC(),
	}
	if name := strings.TrimSpace(in.Name); name != "" {
		log.RecipientName = &name
	}
	if result.MessageID != "" {
		id := result.MessageID
		log.MessageID = &id
	}
	if result.Error != "" {
		errMsg := result.Error
		log.ErrorMessage = &errMsg
	}
	if _, err := s.messages.Create(ctx, log); err != nil {
		return nil, err
	}

	metrics.MessagesSentTotal.WithLabelValues(in.Type, status).Inc()
	if result.Simulated {
		metrics.SimulatedSendsTotal.Inc()
	}

	s.activity.record(ctx, actor, domain.ActionSendMessage,
		fmt.Sprintf("To: %s | Status: %s", phone, status))

	return &ports.SendMessageResult{
		Success:   result.Success,
		MessageID: log.MessageID,
		Status:    status,
		Simulated: result.Simulated,
		Note:      result.Note,
	}, nil
}

// SendBulk runs a campaign fully inline: a Campaign record is created before
// the loop, every recipient gets a MessageLog, and the campaign counters are
// finalized afterwards. A crash mid-loop leaves the campaign "running".
func (s *MessageService) SendBulk(ctx context.Context, actor ports.Actor, in ports.BulkSendInput) (*ports.BulkSendResult, error) {
	if len(in.Recipients) == 0 {
		return nil, domain.Invalid("No valid recipients found")
	}
	if in.TemplateID == 0 {
		return nil, domain.Invalid("Template ID required for bulk messaging")
	}

	tmpl, err := s.templates.FindByID(ctx, in.TemplateID)
	if err != nil {
		return nil, err
	}

	campaign, err := s.campaigns.Create(ctx, &domain.Campaign{
		Name:            in.CampaignName,
		TemplateID:      tmpl.ID,
		TemplateName:    tmpl.Name,
		TotalRecipients: len(in.Recipients),
		Status:          domain.CampaignStatusRunning,
		CreatedBy:       actor.UserID,
		CreatedAt:       time.Now().UTC(),
	})
	if err != nil {
		return nil, err
	}
	metrics.CampaignsCreatedTotal.Inc()

	var sent, failed int
	results := make([]ports.BulkRecipientResult, 0, len(in.Recipients))

	for _, rec := range in.Recipients {
		phone := strings.TrimSpace(rec.Phone)

		if phone == "" || !s.gateway.ValidatePhone(phone) {
			failed++
			s.appendBulkLog(ctx, actor, tmpl, phone, rec.Name, ports.GatewayResult{Error: "Invalid phone"})
			results = append(results, ports.BulkRecipientResult{
				Phone:  phone,
				Status: domain.MessageStatusFailed,
				Error:  "Invalid phone",
			})
			continue
		}

		result := s.gateway.SendTemplate(ctx, phone, tmpl.Name, tmpl.Language, rec.Variables, "")
		status := domain.MessageStatusSent
		if result.Success {
			sent++
		} else {
			failed++
			status = domain.MessageStatusFailed
		}
		metrics.MessagesSentTotal.WithLabelValues(domain.MessageTypeBulk, status).Inc()
		if result.Simulated {
			metrics.SimulatedSendsTotal.Inc()
		}

		logged := s.appendBulkLog(ctx, actor, tmpl, phone, rec.Name, result)
		results = append(results, ports.BulkRecipientResult{
			Phone:     phone,
			Name:      rec.Name,
			Status:    status,
			MessageID: logged.MessageID,
			Error:     result.Error,
		})
	}

	now := time.Now().UTC()
	campaign.SentCount = sent
	campaign.FailedCount = failed
	campaign.Status = domain.CampaignStatusCompleted
	campaign.CompletedAt = &now
	if err := s.campaigns.Update(ctx, campaign); err != nil {
		return nil, err
	}

	s.activity.record(ctx, actor, domain.ActionBulkSend,
		fmt.Sprintf("Campaign: %s | Sent: %d | Failed: %d", in.CampaignName, sent, failed))
	s.log.Info().Int("campaign_id", campaign.ID).Int("sent", sent).Int("failed", failed).Msg("bulk send completed")

	return &ports.BulkSendResult{
		CampaignID: campaign.ID,
		Total:      len(in.Recipients),
		Sent:       sent,
		Failed:     failed,
		Results:    results,
	}, nil
}

// appendBulkLog records one bulk recipient outcome. Log write failures are
// not fatal to the rest of the batch.
func (s *MessageService) appendBulkLog(ctx context.Context, actor ports.Actor, tmpl *domain.Template, phone, name string, result ports.GatewayResult) *domain.MessageLog {
	status := domain.MessageStatusSent
	if !result.Success {
		status = domain.MessageStatusFailed
	}

	log := &domain.MessageLog{
		RecipientPhone: phone,
		MessageType:    domain.MessageTypeBulk,
		TemplateID:     &tmpl.ID,
		TemplateName:   &tmpl.Name,
		BodyPreview:    domain.Preview(tmpl.Body),
		Status:         status,
		SentBy:         actor.UserID,
		SentAt:         time.Now().UTC(),
	}
	if name != "" {
		n := name
		log.RecipientName = &n
	}
	if result.MessageID != "" {
		id := result.MessageID
		log.MessageID = &id
	}
	if result.Error != "" {
		errMsg := result.Error
		log.ErrorMessage = &errMsg
	}

	created, err := s.messages.Create(ctx, log)
	if err != nil {
		s.log.Warn().Err(err).Str("phone", phone).Msg("failed to record bulk message log")
		return log
	}
	return created
}

func (s *MessageService) Logs(ctx context.Context, q ports.LogQuery) (*ports.LogPage, error) {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 {
		q.Limit = 50
	}

	logs, total, err := s.messages.List(ctx, q)
	if err != nil {
		return nil, err
	}

	pages := 1
	if total > 0 {
		pages = (total + q.Limit - 1) / q.Limit
	}
	return &ports.LogPage{Logs: logs, Total: total, Page: q.Page, Pages: pages}, nil
}

func (s *MessageService) Campaigns(ctx context.Context) ([]*domain.Campaign, error) {
	return s.campaigns.List(ctx)
}

func (s *MessageService) Campaign(ctx context.Context, id int) (*ports.CampaignDetail, error) {
	campaign, err := s.campaigns.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	logs, err := s.messages.ListByTemplateName(ctx, campaign.TemplateName, campaignDetailLogLimit)
	if err != nil {
		return nil, err
	}
	return &ports.CampaignDetail{Campaign: campaign, Logs: logs}, nil
}

// ApplyStatusUpdate processes one provider status event. The provider may
// report ids this instance never sent (for example after a restart wiped the
// logs); those are ignored.
func (s *MessageService) ApplyStatusUpdate(ctx context.Context, messageID, status, errorTitle string) error {
	if messageID == "" || status == "" {
		return nil
	}

	log, err := s.messages.FindByMessageID(ctx, messageID)
	if err != nil {
		s.log.Debug().Str("message_id", messageID).Str("status", status).Msg("status update for unknown message id")
		return nil
	}

	now := time.Now().UTC()
	log.Status = status
	switch status {
	case domain.MessageStatusDelivered:
		if log.DeliveredAt == nil {
			log.DeliveredAt = &now
		}
	case domain.MessageStatusRead:
		if log.ReadAt == nil {
			log.ReadAt = &now
		}
	case domain.MessageStatusFailed:
		title := errorTitle
		if title == "" {
			title = "Unknown error"
		}
		log.ErrorMessage = &title
	}

	if err := s.messages.Update(ctx, log); err != nil {
		return err
	}
	metrics.WebhookStatusUpdatesTotal.WithLabelValues(status).Inc()
	return nil
}
