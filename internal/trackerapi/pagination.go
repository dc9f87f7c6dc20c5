package trackerapi

import (
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// listWindow is the probe-pagination contract shared by every list
// endpoint: page is 0-based, limit is optional. The query fetches limit+1
// rows so a further page can be detected without a COUNT; the probe row is
// trimmed before the response.
type listWindow struct {
	Page  int
	Limit *int
}

// parseListWindow reads page/limit query parameters. A missing limit
// disables pagination; limit below 1 is rejected.
func parseListWindow(c echo.Context) (listWindow, error) {
	w := listWindow{}

	if raw := c.QueryParam("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil || page < 0 {
			return w, errors.Errorf("invalid page %q", raw)
		}
		w.Page = page
	}

	if raw := c.QueryParam("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			return w, errors.Errorf("invalid limit %q", raw)
		}
		if limit < 1 {
			return w, errors.Errorf("limit must be at least 1, got %d", limit)
		}
		w.Limit = &limit
	}

	return w, nil
}

// apply narrows a query to the probe window: offset page*limit, limit+1
// rows. Without a limit the query is returned untouched.
func (w listWindow) apply(db *gorm.DB) *gorm.DB {
	if w.Limit == nil {
		return db
	}
	return db.Offset(w.Page * *w.Limit).Limit(*w.Limit + 1)
}

// trimProbe drops the probe row when present. hasNextPage is true exactly
// when the store returned limit+1 rows.
func trimProbe[T any](rows []T, w listWindow) ([]T, bool) {
	if w.Limit == nil || len(rows) <= *w.Limit {
		return rows, false
	}
	return rows[:*w.Limit], true
}
