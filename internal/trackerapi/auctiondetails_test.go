package trackerapi

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/talkincode/auctiontrack/internal/domain"
)

// The lifecycle gate must refuse every line item mutation against a
// missing or closed auction, and its verdict must reach the caller so
// nothing gets persisted after the rejection was written.
func TestCheckAuctionOpen(t *testing.T) {
	tests := []struct {
		name       string
		header     domain.AuctionHeader
		loadErr    error
		wantOpen   bool
		wantStatus int
		wantCode   string
	}{
		{
			name:     "open auction passes",
			header:   domain.AuctionHeader{ID: 1, IsClosed: false},
			wantOpen: true,
		},
		{
			name:       "closed auction rejected",
			header:     domain.AuctionHeader{ID: 2, IsClosed: true},
			wantOpen:   false,
			wantStatus: http.StatusConflict,
			wantCode:   "AUCTION_CLOSED",
		},
		{
			name:       "missing auction rejected",
			loadErr:    errors.New("record not found"),
			wantOpen:   false,
			wantStatus: http.StatusNotFound,
			wantCode:   "NOT_FOUND",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodPut, "/", nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			open := checkAuctionOpen(c, &tt.header, tt.loadErr)
			if open != tt.wantOpen {
				t.Fatalf("checkAuctionOpen() = %v, want %v", open, tt.wantOpen)
			}

			if tt.wantOpen {
				if rec.Body.Len() != 0 {
					t.Errorf("unexpected response written for open auction: %s", rec.Body.String())
				}
				return
			}
			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if !strings.Contains(rec.Body.String(), tt.wantCode) {
				t.Errorf("body %q missing code %q", rec.Body.String(), tt.wantCode)
			}
		})
	}
}
