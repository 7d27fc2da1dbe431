// Package metrics defines the custom Prometheus metrics for the WhatsApp
// dashboard backend. It is the single source of truth for metric names,
// labels, and help strings. All metrics register themselves with the default
// registry via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "whatsapp_dashboard"

// MessagesSentTotal counts send attempts.
// Labels:
//   - type: "template", "text" or "bulk"
//   - status: "sent" or "failed"
var MessagesSentTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "messages_sent_total",
		Help:      "Total number of outbound message send attempts.",
	},
	[]string{"type", "status"},
)

// SimulatedSendsTotal counts sends answered in demo mode without a provider
// call.
var SimulatedSendsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "simulated_sends_total",
		Help:      "Total number of sends simulated because provider credentials are unset.",
	},
)

// CampaignsCreatedTotal counts bulk-send campaigns.
var CampaignsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "campaigns_created_total",
		Help:      "Total number of bulk-send campaigns created.",
	},
)

// WebhookStatusUpdatesTotal counts applied provider status events.
// Label:
//   - status: "delivered", "read", "failed", ...
var WebhookStatusUpdatesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "webhook_status_updates_total",
		Help:      "Total number of webhook status updates applied to message logs.",
	},
	[]string{"status"},
)
