package database

import "testing"

func TestConnectRequiresURI(t *testing.T) {
	if _, err := Connect(""); err == nil {
		t.Fatal("expected error for empty URI")
	}
}
