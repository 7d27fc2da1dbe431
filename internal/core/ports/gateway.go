package ports

import "context"

// GatewayResult is the uniform outcome of a provider dispatch. Gateway
// failures are values, never errors: callers always receive a decidable
// outcome and decide for themselves how to record it.
type GatewayResult struct {
	Success   bool
	MessageID string
	Simulated bool
	Note      string
	Error     string
}

// MessagingGateway abstracts the WhatsApp Cloud API client.
type MessagingGateway interface {
	SendText(ctx context.Context, phone, text string) GatewayResult
	SendTemplate(ctx context.Context, phone, templateName, language string, variables []string, buttonURL string) GatewayResult

	// ValidatePhone reports whether phone is sendable: after stripping
	// spaces, dashes and plus signs it must be all digits, 7 to 15 long.
	ValidatePhone(phone string) bool
}
