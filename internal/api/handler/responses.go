package handler

// statusResponse is the acknowledgement envelope returned by mutation
// endpoints that have no entity payload.
type statusResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
