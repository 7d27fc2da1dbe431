package whatsapp

// StatusPayload is the inbound webhook envelope Meta posts for delivery
// status updates. Fields we do not consume are omitted; unknown JSON keys
// are ignored by the decoder.
type StatusPayload struct {
	Object string  `json:"object"`
	Entry  []Entry `json:"entry"`
}

type Entry struct {
	ID      string   `json:"id"`
	Changes []Change `json:"changes"`
}

type Change struct {
	Field string      `json:"field"`
	Value ChangeValue `json:"value"`
}

type ChangeValue struct {
	MessagingProduct string         `json:"messaging_product"`
	Statuses         []StatusUpdate `json:"statuses"`
}

// StatusUpdate reports the provider-assigned message id and its new status:
// "sent", "delivered", "read" or "failed".
type StatusUpdate struct {
	ID          string        `json:"id"`
	Status      string        `json:"status"`
	Timestamp   string        `json:"timestamp"`
	RecipientID string        `json:"recipient_id"`
	Errors      []StatusError `json:"errors"`
}

type StatusError struct {
	Code  int    `json:"code"`
	Title string `json:"title"`
}
