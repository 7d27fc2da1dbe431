package domain

import "time"

// Activity log action tags, one constant per audited operation.
const (
	ActionLogin           = "LOGIN"
	ActionLogout          = "LOGOUT"
	ActionPasswordChange  = "PASSWORD_CHANGE"
	ActionSendMessage     = "SEND_MESSAGE"
	ActionBulkSend        = "BULK_SEND"
	ActionCreateTemplate  = "CREATE_TEMPLATE"
	ActionUpdateTemplate  = "UPDATE_TEMPLATE"
	ActionDeleteTemplate  = "DELETE_TEMPLATE"
	ActionApproveTemplate = "APPROVE_TEMPLATE"
	ActionCreateUser      = "CREATE_USER"
	ActionUpdateUser      = "UPDATE_USER"
	ActionDeactivateUser  = "DEACTIVATE_USER"
)

// ActivityLog is an audit trail entry for a privileged or state-changing
// action. Username is a snapshot taken at write time.
type ActivityLog struct {
	ID        int       `json:"id"`
	UserID    int       `json:"user_id"`
	Username  string    `json:"username"`
	Action    string    `json:"action"`
	Details   *string   `json:"details"`
	IPAddress *string   `json:"ip_address"`
	Timestamp time.Time `json:"timestamp"`
}
