package models

import "testing"

func TestOrganizationIsBookable(t *testing.T) {
	cases := []struct {
		status   string
		bookable bool
	}{
		{OrgStatusActive, true},
		{OrgStatusPendingPayment, false},
		{OrgStatusApproved, false},
		{OrgStatusSuspended, false},
		{OrgStatusRejected, false},
		{OrgStatusChurned, false},
	}
	for _, tc := range cases {
		o := Organization{Status: tc.status}
		if got := o.IsBookable(); got != tc.bookable {
			t.Fatalf("IsBookable() for %s = %v, want %v", tc.status, got, tc.bookable)
		}
	}
}

func TestApplicationIsTerminal(t *testing.T) {
	for _, status := range NonTerminalApplicationStatuses {
		a := Application{Status: status}
		if a.IsTerminal() {
			t.Fatalf("application in %s must still be decidable", status)
		}
	}
	for _, status := range []string{ApplicationStatusApproved, ApplicationStatusRejected} {
		a := Application{Status: status}
		if !a.IsTerminal() {
			t.Fatalf("application in %s must be terminal", status)
		}
	}
}

func TestGenerateTempPassword(t *testing.T) {
	p1, err := GenerateTempPassword(12)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(p1) != 12 {
		t.Fatalf("length = %d, want 12", len(p1))
	}

	// below the floor the length is raised, not an error
	p2, err := GenerateTempPassword(4)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(p2) != 10 {
		t.Fatalf("length = %d, want floor 10", len(p2))
	}
}

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("Client123!@#")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if !CheckPasswordHash("Client123!@#", hash) {
		t.Fatal("correct password rejected")
	}
	if CheckPasswordHash("wrong", hash) {
		t.Fatal("wrong password accepted")
	}
}
