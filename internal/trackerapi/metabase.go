package trackerapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/talkincode/auctiontrack/internal/metabase"
	"github.com/talkincode/auctiontrack/internal/webserver"
)

func registerMetabaseRoutes() {
	webserver.ApiGET("/metabase/dashboard-url", getMetabaseDashboardURL)
}

// getMetabaseDashboardURL signs a fresh embed URL for the analytics
// dashboard. The dashboard id comes from sys_config so operators can
// repoint it without a restart; the yaml value is the fallback.
func getMetabaseDashboardURL(c echo.Context) error {
	appCtx := GetAppContext(c)
	cfg := appCtx.Config().Metabase

	dashboardID := int(appCtx.GetSettingsInt64Value("metabase", "DashboardId"))
	if dashboardID <= 0 {
		dashboardID = cfg.DashboardID
	}

	embed, err := metabase.DashboardURL(cfg.SiteURL, cfg.SecretKey, dashboardID)
	if err != nil {
		return fail(c, http.StatusServiceUnavailable, "METABASE_UNAVAILABLE",
			"Dashboard embedding is not available", err.Error())
	}
	return ok(c, embed)
}
