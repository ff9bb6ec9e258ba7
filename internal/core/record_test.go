package core

import (
	"testing"
	"time"
)

func TestValidateDate(t *testing.T) {
	cases := []struct {
		in string
		ok bool
	}{
		{"2024-01-01", true},
		{"2024-12-31", true},
		{"2024-1-1", false}, // not canonical
		{"2024-02-30", false},
		{"01/01/2024", false},
		{"", false},
	}
	for i, tc := range cases {
		err := ValidateDate(tc.in)
		if tc.ok && err != nil {
			t.Fatalf("case %d (%q) expected ok, got %v", i, tc.in, err)
		}
		if !tc.ok && err == nil {
			t.Fatalf("case %d (%q) expected error", i, tc.in)
		}
	}
}

func TestRecordValidate(t *testing.T) {
	good := Record{ID: "x", Name: "Coffee", Price: 3.5, Date: "2024-01-01"}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	bads := []struct {
		r    Record
		want error
	}{
		{Record{Name: "", Price: 1, Date: "2024-01-01"}, ErrEmptyName},
		{Record{Name: "  ", Price: 1, Date: "2024-01-01"}, ErrEmptyName},
		{Record{Name: "a", Price: 0, Date: "2024-01-01"}, ErrInvalidPrice},
		{Record{Name: "a", Price: -1, Date: "2024-01-01"}, ErrInvalidPrice},
		{Record{Name: "a", Price: 1, Date: "yesterday"}, ErrInvalidDate},
	}
	for i, tc := range bads {
		if err := tc.r.Validate(); err != tc.want {
			t.Fatalf("case %d expected %v, got %v", i, tc.want, err)
		}
	}
}

func TestDateLabel(t *testing.T) {
	now := time.Date(2024, 3, 15, 14, 30, 0, 0, time.UTC)
	cases := []struct {
		in   string
		want string
	}{
		{"2024-03-15", "Today"},
		{"2024-03-14", "Yesterday"},
		{"2024-01-02", "02.01.2024"},
		{"not-a-date", "not-a-date"},
	}
	for _, tc := range cases {
		if got := DateLabel(tc.in, now); got != tc.want {
			t.Fatalf("DateLabel(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestTodayIsCanonical(t *testing.T) {
	if err := ValidateDate(Today()); err != nil {
		t.Fatalf("Today() not canonical: %v", err)
	}
}
