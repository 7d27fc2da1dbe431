package ports

// Actor identifies the authenticated user performing an operation, as decoded
// from the JWT claims, plus the client IP for activity logging. The role is
// the one embedded in the token and is not re-checked against the live user
// record.
type Actor struct {
	UserID   int
	Username string
	Role     string
	IP       string
}
