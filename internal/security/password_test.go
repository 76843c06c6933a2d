package security

import (
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestHashAndCheckPassword(t *testing.T) {
	t.Parallel()

	hash, errHash := HashPassword("secret1", bcrypt.MinCost)
	if errHash != nil {
		t.Fatalf("hash: %v", errHash)
	}
	if hash == "secret1" || !strings.HasPrefix(hash, "$2") {
		t.Fatalf("unexpected hash: %q", hash)
	}

	if !CheckPassword(hash, "secret1") {
		t.Fatalf("correct password rejected")
	}
	if CheckPassword(hash, "secret2") {
		t.Fatalf("wrong password accepted")
	}
}

func TestHashPasswordDefaultCost(t *testing.T) {
	t.Parallel()

	// Zero cost must fall back to the default work factor, not bcrypt's.
	hash, errHash := HashPassword("secret1", 0)
	if errHash != nil {
		t.Fatalf("hash: %v", errHash)
	}
	cost, errCost := bcrypt.Cost([]byte(hash))
	if errCost != nil {
		t.Fatalf("cost: %v", errCost)
	}
	if cost != DefaultBcryptCost {
		t.Fatalf("expected cost %d, got %d", DefaultBcryptCost, cost)
	}
}
