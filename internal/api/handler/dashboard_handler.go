package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/kolecta/collection-system/internal/api/metrics"
	"github.com/kolecta/collection-system/internal/api/middleware"
	"github.com/kolecta/collection-system/internal/core/ports"
)

// DashboardHandler serves the role-specific dashboard view models.
type DashboardHandler struct {
	aggregator ports.Aggregator
	loc        *time.Location
}

func NewDashboardHandler(aggregator ports.Aggregator, loc *time.Location) *DashboardHandler {
	if loc == nil {
		loc = time.UTC
	}
	return &DashboardHandler{aggregator: aggregator, loc: loc}
}

// Agent handles GET /v1/agent/dashboard.
//
// @Summary      Agent dashboard
// @Tags         dashboards
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  ports.AgentDashboard
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Router       /v1/agent/dashboard [get]
func (h *DashboardHandler) Agent(c echo.Context) error {
	principal, ok := middleware.CtxPrincipal(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}

	start := time.Now()
	dash, err := h.aggregator.AgentDashboard(c.Request().Context(), principal, h.loc)
	if err != nil {
		return err
	}
	metrics.AggregationDuration.WithLabelValues("agent_dashboard").Observe(time.Since(start).Seconds())
	return c.JSON(http.StatusOK, dash)
}

// Client handles GET /v1/client/summary. Partial aggregation failures do not
// fail the request: the response carries the partial totals together with the
// failed sources.
//
// @Summary      Commerçant financial summary
// @Tags         dashboards
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  ports.CommercantSummary
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Router       /v1/client/summary [get]
func (h *DashboardHandler) Client(c echo.Context) error {
	principal, ok := middleware.CtxPrincipal(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}

	start := time.Now()
	summary, err := h.aggregator.CommercantSummary(c.Request().Context(), principal)
	if err != nil {
		return err
	}
	metrics.AggregationDuration.WithLabelValues("commercant_summary").Observe(time.Since(start).Seconds())
	metrics.AggregationSourceFailuresTotal.Add(float64(len(summary.Failures)))
	metrics.BalanceDiscrepanciesTotal.Add(float64(len(summary.Discrepancies)))
	return c.JSON(http.StatusOK, summary)
}
