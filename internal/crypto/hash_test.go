package crypto

import (
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("correct-horse-battery-staple")
	if err != nil {
		t.Fatalf("HashPassword() unexpected error: %v", err)
	}

	if hash == "" {
		t.Fatal("HashPassword() returned empty string")
	}

	// bcrypt hashes encode their version and cost: $2a$10$...
	if !strings.HasPrefix(hash, "$2a$") {
		t.Errorf("HashPassword() unexpected hash prefix: %q", hash)
	}

	cost, err := bcrypt.Cost([]byte(hash))
	if err != nil {
		t.Fatalf("bcrypt.Cost() unexpected error: %v", err)
	}
	if cost != HashCost {
		t.Errorf("HashPassword() cost = %d, want %d", cost, HashCost)
	}
}

func TestVerifyPasswordCorrect(t *testing.T) {
	password := "my-secure-password"
	hash, err := HashPassword(password)
	if err != nil {
		t.Fatalf("HashPassword() unexpected error: %v", err)
	}

	if !VerifyPassword(password, hash) {
		t.Error("VerifyPassword() returned false for correct password")
	}
}

func TestVerifyPasswordWrong(t *testing.T) {
	hash, err := HashPassword("correct-password")
	if err != nil {
		t.Fatalf("HashPassword() unexpected error: %v", err)
	}

	if VerifyPassword("wrong-password", hash) {
		t.Error("VerifyPassword() returned true for wrong password")
	}
}

func TestHashPasswordProducesDifferentHashes(t *testing.T) {
	password := "same-password"

	hash1, err := HashPassword(password)
	if err != nil {
		t.Fatalf("HashPassword() unexpected error: %v", err)
	}

	hash2, err := HashPassword(password)
	if err != nil {
		t.Fatalf("HashPassword() unexpected error: %v", err)
	}

	if hash1 == hash2 {
		t.Error("HashPassword() produced identical hashes for same password (salt should differ)")
	}
}

func TestVerifyPasswordInvalidHash(t *testing.T) {
	if VerifyPassword("password", "not-a-bcrypt-hash") {
		t.Error("VerifyPassword() returned true for invalid hash format")
	}
}
