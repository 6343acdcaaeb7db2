package auth

import (
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasherRoundTrip(t *testing.T) {
	hasher := NewBcryptHasher(bcrypt.MinCost)

	digest, err := hasher.Hash("password1")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}
	if digest == "password1" || digest == "" {
		t.Fatalf("Hash() returned a non-opaque digest: %q", digest)
	}

	if !hasher.Verify("password1", digest) {
		t.Error("Verify() = false for matching password")
	}
	if hasher.Verify("password2", digest) {
		t.Error("Verify() = true for wrong password")
	}
	if hasher.Verify("", digest) {
		t.Error("Verify() = true for empty password")
	}
}

func TestBcryptHasherSaltsDigests(t *testing.T) {
	hasher := NewBcryptHasher(bcrypt.MinCost)

	first, err := hasher.Hash("password1")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}
	second, err := hasher.Hash("password1")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}

	if first == second {
		t.Error("two digests of the same password are identical; salting is broken")
	}
}

func TestNewBcryptHasherClampsCost(t *testing.T) {
	tests := []struct {
		name string
		cost int
		want int
	}{
		{name: "zero falls back to default", cost: 0, want: bcrypt.DefaultCost},
		{name: "negative falls back to default", cost: -3, want: bcrypt.DefaultCost},
		{name: "above max falls back to default", cost: bcrypt.MaxCost + 1, want: bcrypt.DefaultCost},
		{name: "min cost kept", cost: bcrypt.MinCost, want: bcrypt.MinCost},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hasher := NewBcryptHasher(tt.cost)
			if hasher.cost != tt.want {
				t.Errorf("cost = %d, want %d", hasher.cost, tt.want)
			}
		})
	}
}

func TestBcryptHasherRejectsOverlongPassword(t *testing.T) {
	hasher := NewBcryptHasher(bcrypt.MinCost)

	// bcrypt refuses input beyond 72 bytes; registration validation keeps
	// such passwords out, but the hasher must still fail closed
	if _, err := hasher.Hash(strings.Repeat("a", 73)); err == nil {
		t.Error("Hash() accepted a 73-byte password")
	}
}
