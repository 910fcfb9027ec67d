package types

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestJobTransitions(t *testing.T) {
	tests := []struct {
		from, to JobStatus
		want     bool
	}{
		{JobOpen, JobInProgress, true},
		{JobInProgress, JobCompleted, true},
		{JobOpen, JobCompleted, false},
		{JobCompleted, JobOpen, false},
		{JobInProgress, JobOpen, false},
		{JobCompleted, JobCompleted, false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			if got := tt.from.CanTransition(tt.to); got != tt.want {
				t.Errorf("CanTransition = %v, want %v", got, tt.want)
			}
			err := tt.from.CheckTransition(tt.to)
			if tt.want && err != nil {
				t.Errorf("unexpected error %v", err)
			}
			if !tt.want && !errors.Is(err, ErrInvalidTransition) {
				t.Errorf("got %v, want ErrInvalidTransition", err)
			}
		})
	}
}

func TestRentalTransitions(t *testing.T) {
	if !RentalActive.CanTransition(RentalReturned) {
		t.Error("active rentals should be returnable")
	}
	if err := RentalReturned.CheckTransition(RentalReturned); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("returning twice: got %v, want ErrInvalidTransition", err)
	}
}

func TestUserActive(t *testing.T) {
	var u User
	if err := json.Unmarshal([]byte(`{"id":1,"email":"a@example.com","role":"admin"}`), &u); err != nil {
		t.Fatal(err)
	}
	if !u.Active() {
		t.Error("a user without is_active should be treated as active")
	}
	if err := json.Unmarshal([]byte(`{"id":2,"is_active":false}`), &u); err != nil {
		t.Fatal(err)
	}
	if u.Active() {
		t.Error("is_active=false should be inactive")
	}
}

func TestStatusLabel(t *testing.T) {
	tests := map[string]string{
		"in_progress": "In Progress",
		"open":        "Open",
		"maintenance": "Maintenance",
		"":            "",
	}
	for in, want := range tests {
		if got := StatusLabel(in); got != want {
			t.Errorf("StatusLabel(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestFormatDate(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"2026-03-07", "7 Mar 2026"},
		{"", "N/A"},
		{"not a date", "not a date"},
	}
	for _, tt := range tests {
		if got := FormatDate(tt.in); got != tt.want {
			t.Errorf("FormatDate(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNewJobValidate(t *testing.T) {
	job := NewJob{CustomerName: "Acme", PhoneNumber: "1", Location: "x", Issue: "y", WorkDate: "2026-01-01", Priority: PriorityHigh}
	if err := job.Validate(); err != nil {
		t.Errorf("valid job: %v", err)
	}
	job.Priority = "urgent"
	if err := job.Validate(); err == nil {
		t.Error("expected an error for an unknown priority")
	}
}
