package security_test

import (
	"testing"
	"time"

	"github.com/hopepulse/hopepulse-api/internal/security"
)

const secret = "test_secret"

func TestMakeParseRoundTrip(t *testing.T) {
	tok, err := security.MakeAccess(secret, "donor@example.com", "Donor", security.AccessTTL)
	if err != nil {
		t.Fatal(err)
	}
	c, err := security.ParseAccess(secret, tok)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if c.Email != "donor@example.com" || c.Name != "Donor" {
		t.Fatalf("claims mismatch: %#v", c)
	}
}

func TestParseRejectsExpired(t *testing.T) {
	tok, err := security.MakeAccess(secret, "donor@example.com", "", -time.Minute)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := security.ParseAccess(secret, tok); err == nil {
		t.Fatal("expired token accepted")
	}
}

func TestParseRejectsWrongSecret(t *testing.T) {
	tok, err := security.MakeAccess(secret, "donor@example.com", "", security.AccessTTL)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := security.ParseAccess("other_secret", tok); err == nil {
		t.Fatal("token signed with wrong secret accepted")
	}
}

func TestParseRejectsGarbage(t *testing.T) {
	for _, tok := range []string{"", "garbage", "a.b.c"} {
		if _, err := security.ParseAccess(secret, tok); err == nil {
			t.Fatalf("garbage token %q accepted", tok)
		}
	}
}
