package security

import (
	"strings"
	"testing"
)

func TestHashAndVerifyPassword(t *testing.T) {
	params := DefaultArgon2Params()

	hash, err := HashPassword("Passw0rd", params)
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}

	if !strings.HasPrefix(hash, "$argon2id$") {
		t.Errorf("hash %q does not carry the argon2id prefix", hash)
	}

	ok, err := VerifyPassword("Passw0rd", hash)
	if err != nil {
		t.Fatalf("VerifyPassword() error = %v", err)
	}
	if !ok {
		t.Error("correct password did not verify")
	}

	ok, err = VerifyPassword("WrongPass1", hash)
	if err != nil {
		t.Fatalf("VerifyPassword() error = %v", err)
	}
	if ok {
		t.Error("wrong password verified")
	}
}

func TestHashPassword_UniqueSalts(t *testing.T) {
	params := DefaultArgon2Params()

	first, err := HashPassword("Passw0rd", params)
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	second, err := HashPassword("Passw0rd", params)
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}

	if first == second {
		t.Error("two hashes of the same password are identical, salt is not random")
	}
}

func TestVerifyPassword_Malformed(t *testing.T) {
	tests := []struct {
		name    string
		encoded string
	}{
		{name: "empty", encoded: ""},
		{name: "not a PHC string", encoded: "plainhash"},
		{name: "wrong algorithm", encoded: "$bcrypt$v=19$m=16384,t=2,p=1$c2FsdA$aGFzaA"},
		{name: "bad base64", encoded: "$argon2id$v=19$m=16384,t=2,p=1$!!!$aGFzaA"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := VerifyPassword("Passw0rd", tt.encoded); err == nil {
				t.Error("expected error for malformed hash")
			}
		})
	}
}

func TestVerifyPassword_ParamsFromHash(t *testing.T) {
	// Verification must honor the cost parameters embedded in the hash, not
	// the process defaults.
	params := Argon2Params{Memory: 8192, Time: 1, Threads: 1, SaltLen: 16, KeyLen: 32}

	hash, err := HashPassword("Passw0rd", params)
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}

	ok, err := VerifyPassword("Passw0rd", hash)
	if err != nil {
		t.Fatalf("VerifyPassword() error = %v", err)
	}
	if !ok {
		t.Error("password hashed with custom params did not verify")
	}
}
