package handler

import (
	"github.com/codeologic/whatsapp-dashboard/internal/core/domain"
	"github.com/codeologic/whatsapp-dashboard/internal/core/ports"
)

// --- Request types ---

type sendMessageRequest struct {
	Phone      string   `json:"phone"`
	Name       string   `json:"name"`
	Type       string   `json:"type"`
	TemplateID *int     `json:"template_id"`
	Variables  []string `json:"variables"`
	Text       string   `json:"text"`
}

// bulkRecipientPayload tolerates variables arriving as numbers or strings in
// hand-written JSON. Everything is coerced to string before the service call.
type bulkRecipientPayload struct {
	Phone     string `json:"phone"`
	Name      string `json:"name"`
	Variables []any  `json:"variables"`
}

// --- Response types ---

type sendMessageResponse struct {
	Success   bool    `json:"success"`
	MessageID *string `json:"message_id"`
	Status    string  `json:"status"`
	Simulated bool    `json:"simulated,omitempty"`
	Note      string  `json:"note,omitempty"`
}

type bulkRecipientResultResponse struct {
	Phone     string  `json:"phone"`
	Name      string  `json:"name,omitempty"`
	Status    string  `json:"status"`
	MessageID *string `json:"message_id,omitempty"`
	Error     string  `json:"error,omitempty"`
}

type bulkSendResponse struct {
	Success    bool                          `json:"success"`
	CampaignID int                           `json:"campaign_id"`
	Total      int                           `json:"total"`
	Sent       int                           `json:"sent"`
	Failed     int                           `json:"failed"`
	Results    []bulkRecipientResultResponse `json:"results"`
}

type logPageResponse struct {
	Logs  []*domain.MessageLog `json:"logs"`
	Total int                  `json:"total"`
	Page  int                  `json:"page"`
	Pages int                  `json:"pages"`
}

type campaignListResponse struct {
	Campaigns []*domain.Campaign `json:"campaigns"`
}

type campaignDetailResponse struct {
	Campaign *domain.Campaign     `json:"campaign"`
	Logs     []*domain.MessageLog `json:"logs"`
}

// --- Mappers ---

func toSendMessageResponse(r *ports.SendMessageResult) sendMessageResponse {
	return sendMessageResponse{
		Success:   r.Success,
		MessageID: r.MessageID,
		Status:    r.Status,
		Simulated: r.Simulated,
		Note:      r.Note,
	}
}

func toBulkSendResponse(r *ports.BulkSendResult) bulkSendResponse {
	results := make([]bulkRecipientResultResponse, 0, len(r.Results))
	for _, rr := range r.Results {
		results = append(results, bulkRecipientResultResponse{
			Phone:     rr.Phone,
			Name:      rr.Name,
			Status:    rr.Status,
			MessageID: rr.MessageID,
			Error:     rr.Error,
		})
	}
	return bulkSendResponse{
		Success:    true,
		CampaignID: r.CampaignID,
		Total:      r.Total,
		Sent:       r.Sent,
		Failed:     r.Failed,
		Results:    results,
	}
}
