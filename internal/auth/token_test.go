package auth

import "testing"

func TestIssueAndParseToken(t *testing.T) {
	p := Principal{UserID: 42, Username: "alice", IsAdmin: true}
	tok, err := IssueToken("secret", p)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	got, err := ParseToken("secret", tok)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got.UserID != 42 || got.Username != "alice" || !got.IsAdmin {
		t.Fatalf("unexpected principal: %+v", got)
	}
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	tok, err := IssueToken("secret", Principal{UserID: 1, Username: "alice"})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := ParseToken("other-secret", tok); err == nil {
		t.Fatal("token accepted under wrong secret")
	}
	if _, err := ParseToken("secret", "not.a.token"); err == nil {
		t.Fatal("garbage token accepted")
	}
}

func TestIssueTokenRequiresSecret(t *testing.T) {
	if _, err := IssueToken("", Principal{UserID: 1, Username: "alice"}); err == nil {
		t.Fatal("empty secret accepted")
	}
}
