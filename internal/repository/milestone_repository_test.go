package repository

import "testing"

func TestValidTransition(t *testing.T) {
	tests := []struct {
		name    string
		from    string
		to      string
		allowed bool
	}{
		{name: "pending to in_progress", from: MilestoneStatusPending, to: MilestoneStatusInProgress, allowed: true},
		{name: "pending to cancelled", from: MilestoneStatusPending, to: MilestoneStatusCancelled, allowed: true},
		{name: "pending to completed skips work", from: MilestoneStatusPending, to: MilestoneStatusCompleted, allowed: false},
		{name: "in_progress to completed", from: MilestoneStatusInProgress, to: MilestoneStatusCompleted, allowed: true},
		{name: "in_progress to cancelled", from: MilestoneStatusInProgress, to: MilestoneStatusCancelled, allowed: true},
		{name: "in_progress back to pending", from: MilestoneStatusInProgress, to: MilestoneStatusPending, allowed: false},
		{name: "completed is terminal", from: MilestoneStatusCompleted, to: MilestoneStatusInProgress, allowed: false},
		{name: "cancelled is terminal", from: MilestoneStatusCancelled, to: MilestoneStatusPending, allowed: false},
		{name: "cancelled cannot complete", from: MilestoneStatusCancelled, to: MilestoneStatusCompleted, allowed: false},
		{name: "no-op pending", from: MilestoneStatusPending, to: MilestoneStatusPending, allowed: true},
		{name: "no-op completed", from: MilestoneStatusCompleted, to: MilestoneStatusCompleted, allowed: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidTransition(tt.from, tt.to); got != tt.allowed {
				t.Errorf("ValidTransition(%q, %q) = %v, want %v", tt.from, tt.to, got, tt.allowed)
			}
		})
	}
}

func TestIsValidMilestoneStatus(t *testing.T) {
	for _, s := range []string{MilestoneStatusPending, MilestoneStatusInProgress, MilestoneStatusCompleted, MilestoneStatusCancelled} {
		if !IsValidMilestoneStatus(s) {
			t.Errorf("IsValidMilestoneStatus(%q) = false, want true", s)
		}
	}
	for _, s := range []string{"", "done", "PENDING", "in-progress"} {
		if IsValidMilestoneStatus(s) {
			t.Errorf("IsValidMilestoneStatus(%q) = true, want false", s)
		}
	}
}
