package auth

import "testing"

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("pw1")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if hash == "pw1" || hash == "" {
		t.Fatalf("hash looks wrong: %q", hash)
	}
	if !CheckPassword(hash, "pw1") {
		t.Fatal("correct password rejected")
	}
	if CheckPassword(hash, "wrong") {
		t.Fatal("wrong password accepted")
	}
	if CheckPassword("not-a-bcrypt-hash", "pw1") {
		t.Fatal("garbage hash accepted")
	}
}
