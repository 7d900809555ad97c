package util

import (
	"strings"
	"testing"
)

func TestHashPassword(t *testing.T) {
	password := "MyPassword123"

	hashed, err := HashPassword(password)
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	if !strings.HasPrefix(hashed, "$2") {
		t.Errorf("hash %q does not look like bcrypt", hashed)
	}
	if strings.Contains(hashed, password) {
		t.Error("hash contains the raw password")
	}

	// empty passwords are rejected
	if _, err := HashPassword(""); err == nil {
		t.Error("HashPassword(\"\") should fail")
	}

	// same password, different salt
	hashed2, _ := HashPassword(password)
	if hashed == hashed2 {
		t.Error("two hashes of the same password are identical, want random salt")
	}
}

func TestCheckPassword(t *testing.T) {
	password := "TestPass456"
	hashed, err := HashPassword(password)
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}

	if !CheckPassword(password, hashed) {
		t.Error("correct password rejected")
	}
	if CheckPassword("WrongPass", hashed) {
		t.Error("wrong password accepted")
	}
	if CheckPassword("", hashed) {
		t.Error("empty password accepted")
	}
	if CheckPassword(password, "") {
		t.Error("empty hash accepted")
	}
	if CheckPassword(password, "not-a-bcrypt-hash") {
		t.Error("malformed hash accepted")
	}
}
