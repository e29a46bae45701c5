package board_test

import (
	"testing"

	"github.com/radzdev1120/job-works/internal/board"
)

// ── ParseStatus ────────────────────────────────────────────────────────────

func TestParseStatus_ValidValues(t *testing.T) {
	valid := []string{"pending", "reviewing", "shortlisted", "accepted", "rejected"}
	for _, s := range valid {
		got, err := board.ParseStatus(s)
		if err != nil {
			t.Errorf("ParseStatus(%q) returned unexpected error: %v", s, err)
		}
		if string(got) != s {
			t.Errorf("ParseStatus(%q) = %q, want %q", s, got, s)
		}
	}
}

func TestParseStatus_InvalidValue(t *testing.T) {
	for _, s := range []string{"UNKNOWN", "", "Pending", " pending"} {
		if _, err := board.ParseStatus(s); err == nil {
			t.Errorf("ParseStatus(%q) expected error, got nil", s)
		}
	}
}

// ── ParseJobType ───────────────────────────────────────────────────────────

func TestParseJobType_ValidValues(t *testing.T) {
	valid := []string{"full-time", "part-time", "contract"}
	for _, s := range valid {
		got, err := board.ParseJobType(s)
		if err != nil {
			t.Errorf("ParseJobType(%q) returned unexpected error: %v", s, err)
		}
		if string(got) != s {
			t.Errorf("ParseJobType(%q) = %q, want %q", s, got, s)
		}
	}
}

func TestParseJobType_InvalidValue(t *testing.T) {
	for _, s := range []string{"internship", "Full-Time", ""} {
		if _, err := board.ParseJobType(s); err == nil {
			t.Errorf("ParseJobType(%q) expected error, got nil", s)
		}
	}
}
