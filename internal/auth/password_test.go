package auth_test

import (
	"testing"

	"github.com/clubops/annonce-backend/internal/auth"
)

func TestVerifyPassword(t *testing.T) {
	hash, err := auth.HashPassword("s3cret-pass")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}

	if !auth.VerifyPassword(hash, "s3cret-pass") {
		t.Error("correct password rejected")
	}
	if auth.VerifyPassword(hash, "wrong-pass") {
		t.Error("wrong password accepted")
	}
	if auth.VerifyPassword("not-a-hash", "s3cret-pass") {
		t.Error("garbage hash accepted")
	}
}
