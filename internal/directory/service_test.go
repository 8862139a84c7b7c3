package directory

import (
	"context"
	"testing"

	"github.com/business-nexus/nexus/internal/store"
)

func TestRegisterAndAuthenticate(t *testing.T) {
	svc := NewService(NewStoreRepository(store.NewMemory()))
	ctx := context.Background()

	user, err := svc.Register(ctx, RegisterInput{
		Name:     "Ada",
		Email:    "ada@example.com",
		Password: "correct horse",
		Role:     RoleInvestor,
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.ID == "" || user.Role != RoleInvestor {
		t.Fatalf("unexpected user: %+v", user)
	}

	authed, err := svc.Authenticate(ctx, Credentials{Email: "ada@example.com", Password: "correct horse"})
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if authed.ID != user.ID {
		t.Fatalf("expected user %s, got %s", user.ID, authed.ID)
	}

	if _, err := svc.Authenticate(ctx, Credentials{Email: "ada@example.com", Password: "wrong"}); err == nil {
		t.Fatal("expected bad password to fail")
	}
}

func TestRegisterValidation(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	ctx := context.Background()

	if _, err := svc.Register(ctx, RegisterInput{Email: "x@example.com", Password: "short", Role: RoleInvestor}); err == nil {
		t.Fatal("expected short password to fail")
	}
	if _, err := svc.Register(ctx, RegisterInput{Email: "x@example.com", Password: "long enough", Role: "admin"}); err == nil {
		t.Fatal("expected unknown role to fail")
	}
}

func TestDuplicateEmailRejected(t *testing.T) {
	svc := NewService(NewStoreRepository(store.NewMemory()))
	ctx := context.Background()

	input := RegisterInput{Name: "Ada", Email: "ada@example.com", Password: "correct horse", Role: RoleInvestor}
	if _, err := svc.Register(ctx, input); err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, err := svc.Register(ctx, input); err == nil {
		t.Fatal("expected duplicate email to fail")
	}
}

func TestUsersByRole(t *testing.T) {
	svc := NewService(NewStoreRepository(store.NewMemory()))
	ctx := context.Background()

	seed := []RegisterInput{
		{Name: "Ada", Email: "ada@example.com", Password: "password1", Role: RoleInvestor},
		{Name: "Grace", Email: "grace@example.com", Password: "password2", Role: RoleInvestor},
		{Name: "Linus", Email: "linus@example.com", Password: "password3", Role: RoleEntrepreneur},
	}
	for _, input := range seed {
		if _, err := svc.Register(ctx, input); err != nil {
			t.Fatalf("register %s: %v", input.Email, err)
		}
	}

	investors, err := svc.UsersByRole(ctx, RoleInvestor)
	if err != nil {
		t.Fatalf("users by role: %v", err)
	}
	if len(investors) != 2 {
		t.Fatalf("expected 2 investors, got %d", len(investors))
	}

	founders, err := svc.UsersByRole(ctx, RoleEntrepreneur)
	if err != nil {
		t.Fatalf("users by role: %v", err)
	}
	if len(founders) != 1 || founders[0].Name != "Linus" {
		t.Fatalf("unexpected entrepreneurs: %v", founders)
	}
}

func TestFindUserByID(t *testing.T) {
	svc := NewService(NewStoreRepository(store.NewMemory()))
	ctx := context.Background()

	user, err := svc.Register(ctx, RegisterInput{Name: "Ada", Email: "ada@example.com", Password: "correct horse", Role: RoleInvestor})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	found, err := svc.FindUserByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("find by id: %v", err)
	}
	if found.Email != user.Email {
		t.Fatalf("expected %s, got %s", user.Email, found.Email)
	}

	if _, err := svc.FindUserByID(ctx, "user_missing"); err == nil {
		t.Fatal("expected unknown id to fail")
	}
}
