package services

import (
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestUserService_Register(t *testing.T) {
	t.Run("stores a hash, never the plaintext", func(t *testing.T) {
		svc := NewUserService(newTestDB(t))

		if _, err := svc.Register("alice", "s3cret"); err != nil {
			t.Fatalf("Register: %v", err)
		}

		user, err := svc.FindByUsername("alice")
		if err != nil {
			t.Fatalf("FindByUsername: %v", err)
		}
		if user.PasswordHash == "s3cret" {
			t.Fatal("password stored in plaintext")
		}
		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("s3cret")); err != nil {
			t.Fatalf("stored hash does not match password: %v", err)
		}
	})

	t.Run("rejects empty fields", func(t *testing.T) {
		svc := NewUserService(newTestDB(t))

		if _, err := svc.Register("", "pw"); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput, got %v", err)
		}
		if _, err := svc.Register("bob", ""); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("rejects duplicates case-insensitively", func(t *testing.T) {
		svc := NewUserService(newTestDB(t))

		if _, err := svc.Register("Alice", "pw1"); err != nil {
			t.Fatalf("Register: %v", err)
		}
		if _, err := svc.Register("alice", "pw2"); !errors.Is(err, ErrConflict) {
			t.Fatalf("expected ErrConflict, got %v", err)
		}
		if _, err := svc.Register("ALICE", "pw3"); !errors.Is(err, ErrConflict) {
			t.Fatalf("expected ErrConflict, got %v", err)
		}
	})
}

func TestUserService_FindByUsername(t *testing.T) {
	svc := NewUserService(newTestDB(t))
	if _, err := svc.Register("Alice", "pw"); err != nil {
		t.Fatalf("Register: %v", err)
	}

	user, err := svc.FindByUsername("aLiCe")
	if err != nil {
		t.Fatalf("case-insensitive lookup failed: %v", err)
	}
	if user.Username != "Alice" {
		t.Fatalf("expected stored casing %q, got %q", "Alice", user.Username)
	}

	// Full-string match only, no substrings.
	if _, err := svc.FindByUsername("Ali"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for partial match, got %v", err)
	}
}

func TestUserService_Authenticate(t *testing.T) {
	svc := NewUserService(newTestDB(t))
	if _, err := svc.Register("bob", "hunter2"); err != nil {
		t.Fatalf("Register: %v", err)
	}

	t.Run("correct credentials", func(t *testing.T) {
		user, err := svc.Authenticate("bob", "hunter2")
		if err != nil {
			t.Fatalf("Authenticate: %v", err)
		}
		if user.Username != "bob" {
			t.Fatalf("unexpected username %q", user.Username)
		}
		if user.PasswordHash != "" {
			t.Fatal("password hash leaked in result")
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		if _, err := svc.Authenticate("bob", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("expected ErrInvalidCredentials, got %v", err)
		}
	})

	t.Run("unknown user", func(t *testing.T) {
		if _, err := svc.Authenticate("nobody", "pw"); !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})
}
