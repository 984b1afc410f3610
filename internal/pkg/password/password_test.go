package password

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestHashAndVerify(t *testing.T) {
	hash, err := HashWithCost("infinity", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if hash == "infinity" {
		t.Fatal("hash must not equal the plain password")
	}
	if !Verify("infinity", hash) {
		t.Fatal("expected password to verify")
	}
	if Verify("wrong", hash) {
		t.Fatal("expected wrong password to fail")
	}
}
