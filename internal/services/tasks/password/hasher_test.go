package password

import (
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func newTestHasher(t *testing.T) *Hasher {
	t.Helper()
	hasher, err := NewHasher(bcrypt.MinCost)
	if err != nil {
		t.Fatalf("new hasher: %v", err)
	}
	return hasher
}

func TestHashVerifyRoundTrip(t *testing.T) {
	hasher := newTestHasher(t)
	for _, plaintext := range []string{"pw123", "correct horse battery staple", "ünïcödé"} {
		hash, err := hasher.Hash(plaintext)
		if err != nil {
			t.Fatalf("hash %q: %v", plaintext, err)
		}
		if hash == plaintext || strings.Contains(hash, plaintext) {
			t.Fatalf("hash leaks plaintext: %q", hash)
		}
		if !hasher.Verify(plaintext, hash) {
			t.Fatalf("verify(%q, hash(%q)) = false", plaintext, plaintext)
		}
		if hasher.Verify(plaintext+"x", hash) {
			t.Fatalf("verify accepted wrong password for %q", plaintext)
		}
	}
}

func TestHashIsSalted(t *testing.T) {
	hasher := newTestHasher(t)
	first, err := hasher.Hash("pw123")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	second, err := hasher.Hash("pw123")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if first == second {
		t.Fatal("expected distinct encodings for repeated hashes")
	}
	if !hasher.Verify("pw123", first) || !hasher.Verify("pw123", second) {
		t.Fatal("expected both encodings to verify")
	}
}

func TestHashRejectsInvalidInput(t *testing.T) {
	hasher := newTestHasher(t)
	if _, err := hasher.Hash("  "); err != ErrEmptyPassword {
		t.Fatalf("expected empty password error, got %v", err)
	}
	if _, err := hasher.Hash(strings.Repeat("a", 73)); err != ErrPasswordTooLong {
		t.Fatalf("expected too long error, got %v", err)
	}
}

func TestVerifyRejectsGarbageHash(t *testing.T) {
	hasher := newTestHasher(t)
	if hasher.Verify("demo", "demo") {
		t.Fatal("expected plaintext stored value not to verify")
	}
	if hasher.Verify("demo", "") {
		t.Fatal("expected empty hash not to verify")
	}
}

func TestNewHasherCost(t *testing.T) {
	if _, err := NewHasher(0); err != nil {
		t.Fatalf("default cost: %v", err)
	}
	if _, err := NewHasher(bcrypt.MaxCost + 1); err == nil {
		t.Fatal("expected out of range cost to fail")
	}
}

func TestIsHashed(t *testing.T) {
	hasher := newTestHasher(t)
	hash, err := hasher.Hash("demo")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if !IsHashed(hash) {
		t.Fatal("expected bcrypt hash to be recognized")
	}
	if IsHashed("demo") {
		t.Fatal("expected plaintext not to be recognized")
	}
	if IsHashed("$2nonsense") {
		t.Fatal("expected malformed prefix not to be recognized")
	}
}
