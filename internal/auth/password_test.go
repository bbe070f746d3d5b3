package auth

import (
	"strings"
	"testing"
)

func TestHashPasswordRoundTrip(t *testing.T) {
	const plaintext = "hunter2secret"

	hash, err := HashPassword(plaintext)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	if hash == plaintext {
		t.Fatal("hash equals plaintext")
	}
	if !strings.HasPrefix(hash, "$2") {
		t.Fatalf("unexpected digest format: %q", hash)
	}
	if !CheckPassword(plaintext, hash) {
		t.Fatal("correct password rejected")
	}
	if CheckPassword("wrongpass", hash) {
		t.Fatal("wrong password accepted")
	}
}

func TestHashPasswordSalted(t *testing.T) {
	first, err := HashPassword("samesecret")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	second, err := HashPassword("samesecret")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	if first == second {
		t.Fatal("two hashes of the same password are identical; salt missing")
	}
}

func TestHashPasswordRejectsEmpty(t *testing.T) {
	if _, err := HashPassword(""); err != ErrEmptyPassword {
		t.Fatalf("want ErrEmptyPassword, got %v", err)
	}
}

func TestCheckPasswordMalformedHash(t *testing.T) {
	if CheckPassword("anything", "not-a-bcrypt-digest") {
		t.Fatal("malformed hash accepted")
	}
}
