// Package memory implements the repository ports on top of a process-wide
// in-memory store. All data is ephemeral and resets on restart.
//
// A single RWMutex serializes every mutation across all collections, so the
// services above never observe a partially applied write. Repositories hand
// out defensive copies; callers mutate through Update methods only.
package memory

import (
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/codeologic/whatsapp-dashboard/internal/core/domain"
)

// Collection names used for the per-collection id counters.
const (
	colUsers      = "users"
	colTemplates  = "templates"
	colMessages   = "message_logs"
	colCampaigns  = "campaigns"
	colActivities = "activity_logs"
)

// Store owns all collections and the auto-increment counters. Construct one
// at process start and share it between the repositories.
type Store struct {
	mu sync.RWMutex

	users      []*domain.User
	templates  []*domain.Template
	messages   []*domain.MessageLog
	campaigns  []*domain.Campaign
	activities []*domain.ActivityLog

	nextID map[string]int
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{nextID: make(map[string]int)}
}

// autoID hands out the next sequential id for a collection, starting at 1.
// Ids are never reused, even after deletion. Callers must hold mu.
func (s *Store) autoID(collection string) int {
	id := s.nextID[collection]
	if id == 0 {
		id = 1
	}
	s.nextID[collection] = id + 1
	return id
}

// SeedAdmin carries the configuration-supplied admin credentials.
type SeedAdmin struct {
	Name     string
	Email    string
	Username string
	Password string
}

// Seed inserts the initial admin user (if the username is absent) and the
// example templates (iff the template collection is empty).
func (s *Store) Seed(admin SeedAdmin) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.seedAdmin(admin); err != nil {
		return err
	}
	s.seedTemplates()
	return nil
}

func (s *Store) seedAdmin(admin SeedAdmin) error {
	for _, u := range s.users {
		if u.Username == admin.Username {
			return nil
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(admin.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	s.users = append(s.users, &domain.User{
		ID:           s.autoID(colUsers),
		Name:         admin.Name,
		Email:        admin.Email,
		Username:     admin.Username,
		PasswordHash: string(hash),
		Role:         domain.RoleAdmin,
		IsActive:     true,
		CreatedAt:    time.Now().UTC(),
	})
	return nil
}

func (s *Store) seedTemplates() {
	if len(s.templates) > 0 {
		return
	}

	now := time.Now().UTC()
	str := func(v string) *string { return &v }

	samples := []*domain.Template{
		{
			Name: "service_update", Category: domain.CategoryUtility, Language: "en",
			Body:   "Important update regarding your service request {{1}}: {{2}}",
			Header: str("GEB Service Update"), Footer: str("Thank you for choosing GEB"),
		},
		{
			Name: "group_invite", Category: domain.CategoryUtility, Language: "en",
			Body:       "Hi {{1}}, you are invited to join the GEB group. Click below to join.",
			Header:     str("GEB Group Invitation"),
			ButtonText: str("Join Group"), ButtonURL: str("https://chat.whatsapp.com/example"),
		},
		{
			Name: "payment_reminder", Category: domain.CategoryUtility, Language: "en",
			Body:   "Dear {{1}}, your payment of ₹{{2}} is due on {{3}}. Please pay to avoid interruption.",
			Header: str("Payment Reminder"), Footer: str("GEB Billing"),
		},
		{
			Name: "welcome_message", Category: domain.CategoryMarketing, Language: "en",
			Body:   "Welcome to GEB, {{1}}! We are excited to have you on board. Your account is now active.",
			Header: str("Welcome to GEB"),
		},
	}

	for _, t := range samples {
		t.ID = s.autoID(colTemplates)
		t.Status = domain.TemplateStatusApproved
		t.CreatedBy = 1
		t.CreatedAt = now
		s.templates = append(s.templates, t)
	}
}

// --- copy helpers ---
//
// Pointer-typed fields (*string, *time.Time) are treated as immutable values:
// updates replace the pointer, never the pointee, so a shallow copy is enough.

func copyUser(u *domain.User) *domain.User {
	c := *u
	return &c
}

func copyTemplate(t *domain.Template) *domain.Template {
	c := *t
	return &c
}

func copyMessage(m *domain.MessageLog) *domain.MessageLog {
	c := *m
	return &c
}

func copyCampaign(c *domain.Campaign) *domain.Campaign {
	cp := *c
	return &cp
}

func copyActivity(a *domain.ActivityLog) *domain.ActivityLog {
	c := *a
	return &c
}
