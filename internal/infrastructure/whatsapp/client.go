// Package whatsapp is the outbound client for Meta's WhatsApp Cloud API.
//
// When provider credentials are not configured the client runs in demo mode:
// every send returns a fabricated success so the rest of the system stays
// usable without a live Meta account.
package whatsapp

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/codeologic/whatsapp-dashboard/internal/core/ports"
)

const (
	graphBaseURL   = "https://graph.facebook.com"
	requestTimeout = 15 * time.Second

	// defaultCountryCode is prefixed to bare 10-digit numbers.
	defaultCountryCode = "91"

	simulatedNote = "Running in demo mode: configure WHATSAPP_PHONE_ID and WHATSAPP_TOKEN for live sending"
)

// Config carries the provider credentials. PhoneID and Token may be empty,
// which switches the client into demo mode.
type Config struct {
	PhoneID    string
	Token      string
	APIVersion string
}

// Client issues message sends to the Graph API.
type Client struct {
	cfg     Config
	baseURL string
	http    *http.Client
	log     zerolog.Logger
}

func NewClient(cfg Config, log zerolog.Logger) *Client {
	if cfg.APIVersion == "" {
		cfg.APIVersion = "v18.0"
	}
	return &Client{
		cfg:     cfg,
		baseURL: graphBaseURL,
		http:    &http.Client{Timeout: requestTimeout},
		log:     log,
	}
}

// --- Graph API message payloads ---

type Message struct {
	MessagingProduct string       `json:"messaging_product"`
	To               string       `json:"to"`
	Type             string       `json:"type"`
	Text             *TextObject  `json:"text,omitempty"`
	Template         *TemplateObj `json:"template,omitempty"`
}

type TextObject struct {
	Body       string `json:"body"`
	PreviewURL bool   `json:"preview_url"`
}

type TemplateObj struct {
	Name       string         `json:"name"`
	Language   LanguageObj    `json:"language"`
	Components []ComponentObj `json:"components"`
}

type LanguageObj struct {
	Code string `json:"code"`
}

type ComponentObj struct {
	Type       string         `json:"type"`
	SubType    string         `json:"sub_type,omitempty"`
	Index      string         `json:"index,omitempty"`
	Parameters []ParameterObj `json:"parameters"`
}

type ParameterObj struct {
	Type string `json:"type"`
	Text string `json:"text,omitempty"`
}

// apiResponse is the subset of the Graph API response we read back.
type apiResponse struct {
	Messages []struct {
		ID string `json:"id"`
	} `json:"messages"`
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// SendText builds and dispatches a plain text message.
func (c *Client) SendText(ctx context.Context, phone, text string) ports.GatewayResult {
	msg := Message{
		MessagingProduct: "whatsapp",
		To:               normalizePhone(phone),
		Type:             "text",
		Text:             &TextObject{Body: text, PreviewURL: false},
	}
	return c.send(ctx, msg)
}

// SendTemplate builds and dispatches a template message. Variables become an
// ordered body-parameter list; a button URL becomes a url-button component at
// index 0.
func (c *Client) SendTemplate(ctx context.Context, phone, templateName, language string, variables []string, buttonURL string) ports.GatewayResult {
	components := make([]ComponentObj, 0, 2)

	if len(variables) > 0 {
		params := make([]ParameterObj, 0, len(variables))
		for _, v := range variables {
			params = append(params, ParameterObj{Type: "text", Text: v})
		}
		components = append(components, ComponentObj{Type: "body", Parameters: params})
	}

	if buttonURL != "" {
		components = append(components, ComponentObj{
			Type:       "button",
			SubType:    "url",
			Index:      "0",
			Parameters: []ParameterObj{{Type: "text", Text: buttonURL}},
		})
	}

	msg := Message{
		MessagingProduct: "whatsapp",
		To:               normalizePhone(phone),
		Type:             "template",
		Template: &TemplateObj{
			Name:       templateName,
			Language:   LanguageObj{Code: language},
			Components: components,
		},
	}
	return c.send(ctx, msg)
}

// send is the single dispatch step every message funnels through. It never
// returns an error: every outcome, including transport failures, is folded
// into a GatewayResult.
func (c *Client) send(ctx context.Context, msg Message) ports.GatewayResult {
	if c.cfg.PhoneID == "" || c.cfg.Token == "" {
		return c.simulate(msg)
	}

	body, err := json.Marshal(msg)
	if err != nil {
		return ports.GatewayResult{Error: err.Error()}
	}

	endpoint := fmt.Sprintf("%s/%s/%s/messages", c.baseURL, c.cfg.APIVersion, c.cfg.PhoneID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return ports.GatewayResult{Error: err.Error()}
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.Token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		var ue *url.Error
		if errors.As(err, &ue) && ue.Timeout() {
			return ports.GatewayResult{Error: "Request timed out"}
		}
		return ports.GatewayResult{Error: "Connection error"}
	}
	defer resp.Body.Close()

	var parsed apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return ports.GatewayResult{Error: err.Error()}
	}

	if resp.StatusCode == http.StatusOK {
		id := "unknown"
		if len(parsed.Messages) > 0 && parsed.Messages[0].ID != "" {
			id = parsed.Messages[0].ID
		}
		return ports.GatewayResult{Success: true, MessageID: id}
	}

	errMsg := parsed.Error.Message
	if errMsg == "" {
		errMsg = "Unknown error"
	}
	c.log.Warn().Int("status", resp.StatusCode).Str("to", msg.To).Str("error", errMsg).Msg("provider rejected message")
	return ports.GatewayResult{Error: errMsg}
}

// simulate fabricates a wamid-shaped message id for demo mode.
func (c *Client) simulate(msg Message) ports.GatewayResult {
	id := "wamid." + strings.ReplaceAll(uuid.NewString(), "-", "")
	c.log.Debug().Str("to", msg.To).Str("message_id", id).Msg("simulated send")
	return ports.GatewayResult{
		Success:   true,
		MessageID: id,
		Simulated: true,
		Note:      simulatedNote,
	}
}

// stripPhone removes spaces, dashes and plus signs.
func stripPhone(phone string) string {
	r := strings.NewReplacer(" ", "", "-", "", "+", "")
	return r.Replace(strings.TrimSpace(phone))
}

// normalizePhone strips formatting characters and prefixes the default
// country code to bare 10-digit numbers.
func normalizePhone(phone string) string {
	cleaned := stripPhone(phone)
	if !strings.HasPrefix(cleaned, defaultCountryCode) && len(cleaned) == 10 {
		cleaned = defaultCountryCode + cleaned
	}
	return cleaned
}

// ValidatePhone reports whether phone is sendable after normalization.
func (c *Client) ValidatePhone(phone string) bool {
	cleaned := stripPhone(phone)
	if len(cleaned) < 7 || len(cleaned) > 15 {
		return false
	}
	for _, ch := range cleaned {
		if ch < '0' || ch > '9' {
			return false
		}
	}
	return true
}
