package domain

import "testing"

func TestParseUserType(t *testing.T) {
	if got, ok := ParseUserType("client"); !ok || got != UserTypeClient {
		t.Fatalf("ParseUserType(client) = %q, %v", got, ok)
	}
	if _, ok := ParseUserType("admin"); ok {
		t.Fatalf("unexpected user type accepted")
	}
}
