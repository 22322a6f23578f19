package repository

import (
	"context"
	"errors"
	"testing"

	"parkscout/internal/testutil"
)

func TestUserRepository_CreateAndGet(t *testing.T) {
	d := testutil.OpenInMemoryDB(t, "userrepo")
	repo := NewUserRepository(d)
	ctx := context.Background()

	u, err := repo.Create(ctx, "alice", "hash-1", false)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if u.ID == 0 || u.Username != "alice" || u.IsAdmin {
		t.Fatalf("unexpected created user: %+v", u)
	}

	g, err := repo.GetByID(ctx, u.ID)
	if err != nil || g == nil || g.Username != "alice" || g.PasswordHash != "hash-1" {
		t.Fatalf("get by id: %v %+v", err, g)
	}

	g2, err := repo.GetByUsername(ctx, "alice")
	if err != nil || g2 == nil || g2.ID != u.ID {
		t.Fatalf("get by username: %v %+v", err, g2)
	}

	missing, err := repo.GetByUsername(ctx, "nobody")
	if err != nil || missing != nil {
		t.Fatalf("expected nil for unknown username, got %+v err=%v", missing, err)
	}
}

func TestUserRepository_DuplicateUsernameKeepsOriginal(t *testing.T) {
	d := testutil.OpenInMemoryDB(t, "userrepo-dup")
	repo := NewUserRepository(d)
	ctx := context.Background()

	if _, err := repo.Create(ctx, "alice", "hash-pw1", false); err != nil {
		t.Fatalf("create: %v", err)
	}
	_, err := repo.Create(ctx, "alice", "hash-pw2", true)
	if !errors.Is(err, ErrDuplicateUser) {
		t.Fatalf("want ErrDuplicateUser, got %v", err)
	}

	// The stored credential must be untouched by the failed insert.
	g, err := repo.GetByUsername(ctx, "alice")
	if err != nil || g == nil {
		t.Fatalf("get after duplicate: %v %+v", err, g)
	}
	if g.PasswordHash != "hash-pw1" || g.IsAdmin {
		t.Fatalf("original row mutated: %+v", g)
	}
}

func TestUserRepository_AdminFlag(t *testing.T) {
	d := testutil.OpenInMemoryDB(t, "userrepo-admin")
	repo := NewUserRepository(d)
	ctx := context.Background()

	a, err := repo.Create(ctx, "obz404", "hash", true)
	if err != nil {
		t.Fatalf("create admin: %v", err)
	}
	g, err := repo.GetByID(ctx, a.ID)
	if err != nil || g == nil || !g.IsAdmin {
		t.Fatalf("admin flag not persisted: %v %+v", err, g)
	}
}
