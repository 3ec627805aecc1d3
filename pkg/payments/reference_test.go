package payments

import (
	"testing"
	"time"
)

func TestFormatPremiumReference(t *testing.T) {
	now := time.UnixMilli(1700000000000)
	got := FormatPremiumReference(42, now)
	want := "candyweb-premium-42-1700000000000"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestFormatParseRoundTrip(t *testing.T) {
	reference := FormatPremiumReference(123, time.Now())
	userID, err := ParsePremiumReference(reference)
	if err != nil {
		t.Fatalf("round trip failed: %v", err)
	}
	if userID != 123 {
		t.Errorf("expected user 123, got %d", userID)
	}
}

func TestParsePremiumReference(t *testing.T) {
	tests := []struct {
		name      string
		reference string
		wantID    uint
		wantErr   bool
	}{
		{"valid", "candyweb-premium-7-1700000000000", 7, false},
		{"large user id", "candyweb-premium-4294967295-1", 4294967295, false},
		{"wrong prefix", "otherapp-premium-7-1700000000000", 0, true},
		{"missing timestamp", "candyweb-premium-7", 0, true},
		{"extra segment", "candyweb-premium-7-1700000000000-extra", 0, true},
		{"non-numeric user id", "candyweb-premium-abc-1700000000000", 0, true},
		{"zero user id", "candyweb-premium-0-1700000000000", 0, true},
		{"non-numeric timestamp", "candyweb-premium-7-later", 0, true},
		{"empty", "", 0, true},
		{"prefix only", "candyweb-premium", 0, true},
		{"prefix with trailing hyphen", "candyweb-premium-", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userID, err := ParsePremiumReference(tt.reference)
			if tt.wantErr {
				if err != ErrInvalidReference {
					t.Fatalf("expected ErrInvalidReference, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if userID != tt.wantID {
				t.Errorf("expected user %d, got %d", tt.wantID, userID)
			}
		})
	}
}
