package trackerapi

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/labstack/echo/v4"
)

func windowFromQuery(t *testing.T, query url.Values) (listWindow, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/?"+query.Encode(), nil)
	rec := httptest.NewRecorder()
	return parseListWindow(e.NewContext(req, rec))
}

func TestParseListWindow(t *testing.T) {
	tests := []struct {
		name      string
		query     url.Values
		wantErr   bool
		wantPage  int
		wantLimit *int
	}{
		{name: "defaults", query: url.Values{}, wantPage: 0, wantLimit: nil},
		{name: "page and limit", query: url.Values{"page": {"3"}, "limit": {"25"}},
			wantPage: 3, wantLimit: intp(25)},
		{name: "limit zero rejected", query: url.Values{"limit": {"0"}}, wantErr: true},
		{name: "negative limit rejected", query: url.Values{"limit": {"-5"}}, wantErr: true},
		{name: "negative page rejected", query: url.Values{"page": {"-1"}}, wantErr: true},
		{name: "garbage page rejected", query: url.Values{"page": {"x"}}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, err := windowFromQuery(t, tt.query)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseListWindow() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if w.Page != tt.wantPage {
				t.Errorf("Page = %d, want %d", w.Page, tt.wantPage)
			}
			if (w.Limit == nil) != (tt.wantLimit == nil) {
				t.Fatalf("Limit = %v, want %v", w.Limit, tt.wantLimit)
			}
			if w.Limit != nil && *w.Limit != *tt.wantLimit {
				t.Errorf("Limit = %d, want %d", *w.Limit, *tt.wantLimit)
			}
		})
	}
}

func TestTrimProbe(t *testing.T) {
	rows := func(n int) []int {
		out := make([]int, n)
		for i := range out {
			out[i] = i
		}
		return out
	}

	tests := []struct {
		name     string
		rows     []int
		limit    *int
		wantLen  int
		wantNext bool
	}{
		{name: "probe row present", rows: rows(11), limit: intp(10), wantLen: 10, wantNext: true},
		{name: "exactly limit rows", rows: rows(10), limit: intp(10), wantLen: 10, wantNext: false},
		{name: "short page", rows: rows(3), limit: intp(10), wantLen: 3, wantNext: false},
		{name: "empty page", rows: rows(0), limit: intp(10), wantLen: 0, wantNext: false},
		{name: "pagination disabled", rows: rows(500), limit: nil, wantLen: 500, wantNext: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, hasNext := trimProbe(tt.rows, listWindow{Limit: tt.limit})
			if len(got) != tt.wantLen {
				t.Errorf("len = %d, want %d", len(got), tt.wantLen)
			}
			if hasNext != tt.wantNext {
				t.Errorf("hasNextPage = %v, want %v", hasNext, tt.wantNext)
			}
			// at most limit rows, never the probe row itself
			if tt.limit != nil && len(got) > *tt.limit {
				t.Errorf("returned %d rows past limit %d", len(got), *tt.limit)
			}
		})
	}
}

func intp(v int) *int { return &v }
