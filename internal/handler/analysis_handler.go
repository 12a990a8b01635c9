package handler

import (
	"farmmall/internal/middleware"
	"farmmall/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /admin/analysis と /admin/audit-logs
type AnalysisHandler struct {
	uc      *usecase.AnalyticsUsecase
	auditUC *usecase.AuditLogUsecase
}

func NewAnalysisHandler(uc *usecase.AnalyticsUsecase, auditUC *usecase.AuditLogUsecase) *AnalysisHandler {
	return &AnalysisHandler{uc: uc, auditUC: auditUC}
}

func (h *AnalysisHandler) RegisterRoutes(api *echo.Group, g Guards) {
	r := api.Group("/admin/analysis", g.Admin...)
	r.GET("/statistics", h.statistics)
	r.GET("/sales-trend", h.salesTrend)
	r.GET("/hot-products", h.hotProducts)

	mw := append(append([]echo.MiddlewareFunc{}, g.Admin...), middleware.AdminRoleGuard())
	api.GET("/admin/audit-logs", h.auditLogs, mw...)
}

func (h *AnalysisHandler) statistics(c echo.Context) error {
	out, err := h.uc.Statistics(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, out)
}

func (h *AnalysisHandler) salesTrend(c echo.Context) error {
	out, err := h.uc.SalesTrend(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, out)
}

func (h *AnalysisHandler) hotProducts(c echo.Context) error {
	out, err := h.uc.HotProducts(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, out)
}

func (h *AnalysisHandler) auditLogs(c echo.Context) error {
	out, err := h.auditUC.List(c.Request().Context(), usecase.ListAuditLogsInput{
		ActorAdminID: c.QueryParam("actorAdminId"),
		Action:       c.QueryParam("action"),
		ResourceType: c.QueryParam("resourceType"),
		ResourceID:   c.QueryParam("resourceId"),
		Limit:        queryInt(c, "limit"),
		Offset:       queryInt(c, "offset"),
	})
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, out)
}
