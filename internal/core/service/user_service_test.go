package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/codeologic/whatsapp-dashboard/internal/core/domain"
	"github.com/codeologic/whatsapp-dashboard/internal/core/ports"
	"github.com/codeologic/whatsapp-dashboard/internal/infrastructure/db/memory"
)

func newUserFixture(t *testing.T, maxUsers int) (*UserService, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	if err := store.Seed(memory.SeedAdmin{
		Name: "GEB Admin", Email: "admin@geb.com", Username: "admin", Password: "admin123",
	}); err != nil {
		t.Fatalf("seed: %v", err)
	}
	svc := NewUserService(
		memory.NewUserRepository(store),
		memory.NewActivityRepository(store),
		maxUsers,
		zerolog.Nop(),
	)
	return svc, store
}

func TestUserService_Create(t *testing.T) {
	svc, _ := newUserFixture(t, 6)
	ctx := context.Background()

	user, err := svc.Create(ctx, testActor, ports.CreateUserInput{
		Name:     "Operator One",
		Email:    "  OP@GEB.com ",
		Username: " Op1 ",
		Password: "secret1",
		Role:     domain.RoleOperator,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if user.Username != "op1" || user.Email != "op@geb.com" {
		t.Fatalf("identifiers not normalized: %+v", user)
	}
	if !user.IsActive {
		t.Fatal("new user must be active")
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("secret1")) != nil {
		t.Fatal("password hash does not verify")
	}
}

func TestUserService_Create_Validation(t *testing.T) {
	svc, _ := newUserFixture(t, 6)
	ctx := context.Background()

	cases := []ports.CreateUserInput{
		{Name: "", Email: "a@b.com", Username: "a", Password: "secret1", Role: domain.RoleViewer},
		{Name: "A", Email: "a@b.com", Username: "a", Password: "short", Role: domain.RoleViewer},
		{Name: "A", Email: "a@b.com", Username: "a", Password: "secret1", Role: "superuser"},
	}
	for i, in := range cases {
		if _, err := svc.Create(ctx, testActor, in); !errors.Is(err, domain.ErrValidation) {
			t.Errorf("case %d: expected validation error, got %v", i, err)
		}
	}
}

func TestUserService_Create_Conflicts(t *testing.T) {
	svc, _ := newUserFixture(t, 6)
	ctx := context.Background()

	_, err := svc.Create(ctx, testActor, ports.CreateUserInput{
		Name: "Dup", Email: "new@geb.com", Username: "admin", Password: "secret1", Role: domain.RoleViewer,
	})
	if !errors.Is(err, domain.ErrUsernameExists) {
		t.Fatalf("expected ErrUsernameExists, got %v", err)
	}

	_, err = svc.Create(ctx, testActor, ports.CreateUserInput{
		Name: "Dup", Email: "admin@geb.com", Username: "fresh", Password: "secret1", Role: domain.RoleViewer,
	})
	if !errors.Is(err, domain.ErrEmailExists) {
		t.Fatalf("expected ErrEmailExists, got %v", err)
	}
}

func TestUserService_Create_EnforcesActiveUserCap(t *testing.T) {
	svc, _ := newUserFixture(t, 3)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		_, err := svc.Create(ctx, testActor, ports.CreateUserInput{
			Name:     fmt.Sprintf("User %d", i),
			Email:    fmt.Sprintf("u%d@geb.com", i),
			Username: fmt.Sprintf("user%d", i),
			Password: "secret1",
			Role:     domain.RoleViewer,
		})
		if err != nil {
			t.Fatalf("create %d: %v", i, err)
		}
	}

	// Seeded admin plus two created users hits the cap of 3.
	_, err := svc.Create(ctx, testActor, ports.CreateUserInput{
		Name: "Overflow", Email: "over@geb.com", Username: "overflow", Password: "secret1", Role: domain.RoleViewer,
	})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected cap violation, got %v", err)
	}

	// Deactivating one frees a slot.
	if err := svc.Deactivate(ctx, testActor, 2); err != nil {
		t.Fatalf("deactivate: %v", err)
	}
	_, err = svc.Create(ctx, testActor, ports.CreateUserInput{
		Name: "Replacement", Email: "rep@geb.com", Username: "replacement", Password: "secret1", Role: domain.RoleViewer,
	})
	if err != nil {
		t.Fatalf("create after freeing slot: %v", err)
	}
}

func TestUserService_Update(t *testing.T) {
	svc, _ := newUserFixture(t, 6)
	ctx := context.Background()

	created, err := svc.Create(ctx, testActor, ports.CreateUserInput{
		Name: "Viewer", Email: "v@geb.com", Username: "viewer", Password: "secret1", Role: domain.RoleViewer,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	role := domain.RoleOperator
	if err := svc.Update(ctx, testActor, created.ID, ports.UpdateUserInput{Role: &role}); err != nil {
		t.Fatalf("update: %v", err)
	}

	badRole := "root"
	if err := svc.Update(ctx, testActor, created.ID, ports.UpdateUserInput{Role: &badRole}); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error for bad role, got %v", err)
	}

	if err := svc.Update(ctx, testActor, 999, ports.UpdateUserInput{}); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserService_Deactivate_Self(t *testing.T) {
	svc, _ := newUserFixture(t, 6)

	err := svc.Deactivate(context.Background(), testActor, testActor.UserID)
	if !errors.Is(err, domain.ErrSelfDeactivate) {
		t.Fatalf("expected ErrSelfDeactivate, got %v", err)
	}
}

func TestUserService_Deactivate_KeepsRecord(t *testing.T) {
	svc, store := newUserFixture(t, 6)
	ctx := context.Background()

	created, err := svc.Create(ctx, testActor, ports.CreateUserInput{
		Name: "Temp", Email: "t@geb.com", Username: "temp", Password: "secret1", Role: domain.RoleViewer,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := svc.Deactivate(ctx, testActor, created.ID); err != nil {
		t.Fatalf("deactivate: %v", err)
	}

	user, err := memory.NewUserRepository(store).FindByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("deactivated user must stay queryable: %v", err)
	}
	if user.IsActive {
		t.Fatal("user still active after deactivation")
	}
}
