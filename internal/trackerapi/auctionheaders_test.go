package trackerapi

import (
	"testing"
	"time"

	"github.com/talkincode/auctiontrack/internal/domain"
)

func TestApplyClosedState(t *testing.T) {
	now := time.Now()
	var header domain.AuctionHeader

	applyClosedState(&header, true, now)
	if !header.IsClosed {
		t.Error("close did not set IsClosed")
	}
	if header.ClosedAt == nil || !header.ClosedAt.Equal(now) {
		t.Errorf("close did not stamp ClosedAt, got %v", header.ClosedAt)
	}
	if !header.UpdatedAt.Equal(now) {
		t.Errorf("close did not touch UpdatedAt, got %v", header.UpdatedAt)
	}

	later := now.Add(time.Minute)
	applyClosedState(&header, false, later)
	if header.IsClosed {
		t.Error("reopen did not clear IsClosed")
	}
	if header.ClosedAt != nil {
		t.Errorf("reopen did not clear ClosedAt, got %v", header.ClosedAt)
	}
	if !header.UpdatedAt.Equal(later) {
		t.Errorf("reopen did not touch UpdatedAt, got %v", header.UpdatedAt)
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr bool
		year    int
		month   time.Month
		day     int
	}{
		{name: "plain date", raw: "2025-03-15", year: 2025, month: time.March, day: 15},
		{name: "padded", raw: "  2025-03-15 ", year: 2025, month: time.March, day: 15},
		{name: "rfc3339", raw: "2025-03-15T09:30:00Z", year: 2025, month: time.March, day: 15},
		{name: "garbage", raw: "15/03/2025", wantErr: true},
		{name: "empty", raw: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseDate(tt.raw)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("parseDate(%q) expected error, got %v", tt.raw, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseDate(%q) error: %v", tt.raw, err)
			}
			if got.Year() != tt.year || got.Month() != tt.month || got.Day() != tt.day {
				t.Errorf("parseDate(%q) = %v, want %d-%02d-%02d", tt.raw, got, tt.year, tt.month, tt.day)
			}
		})
	}
}
