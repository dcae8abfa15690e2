package models

import "testing"

func TestAccount_SessionID(t *testing.T) {
	a := &Account{ID: 42, Username: "alice"}
	if got := a.SessionID(); got != "42" {
		t.Fatalf("expected \"42\", got %q", got)
	}
}
