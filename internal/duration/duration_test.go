package duration

import (
	"errors"
	"testing"
	"time"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    time.Duration
		wantErr error
	}{
		{"empty string", "", 0, ErrInvalidFormat},
		{"invalid characters", "1d!", 0, ErrInvalidFormat},
		{"no number", "d", 0, ErrInvalidNumber},
		{"no unit", "10", 0, ErrInvalidFormat},
		{"zero", "0d", 0, nil},
		{"negative number", "-1d", 0, ErrInvalidFormat},
		{"invalid unit", "1x", 0, ErrInvalidUnit},
		{"1 hour", "1h", time.Hour, nil},
		{"2 hours (plural)", "2hours", 2 * time.Hour, nil},
		{"1 day (full word)", "1day", 24 * time.Hour, nil},
		{"30 days", "30d", 30 * 24 * time.Hour, nil},
		{"2 weeks with space", "2 weeks", 2 * 7 * 24 * time.Hour, nil},
		{"1 month", "1m", 30 * 24 * time.Hour, nil},
		{"2 years (plural)", "2years", 2 * 365 * 24 * time.Hour, nil},
		{"mixed case", "1DaY", 24 * time.Hour, nil},
		{"surrounding spaces", " 1d ", 24 * time.Hour, nil},
		{"several segments", "1w 2d", 9 * 24 * time.Hour, nil},
		{"several segments without spaces", "1d12h", 36 * time.Hour, nil},
		{"invalid unit in second segment", "1d 2q", 0, ErrInvalidUnit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)
			if tt.wantErr != nil {
				if err == nil {
					t.Errorf("Parse(%q) should return error", tt.input)
					return
				}
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("Parse(%q) error = %v, want %v", tt.input, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Errorf("Parse(%q) unexpected error: %v", tt.input, err)
				return
			}
			if got != tt.want {
				t.Errorf("Parse(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestSplitSegments(t *testing.T) {
	got, err := splitSegments("3 days 4h")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []segment{{num: "3", unit: "days"}, {num: "4", unit: "h"}}
	if len(got) != len(want) {
		t.Fatalf("splitSegments() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("segment %d = %v, want %v", i, got[i], want[i])
		}
	}
}
