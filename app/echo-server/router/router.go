package router

import (
	"fourthandshort/internal/rest"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func SetDecisionRoutes(e *echo.Echo, handler *rest.DecisionHandler) {
	v1 := e.Group("/v1")
	v1.GET("/recommend", handler.Recommend)
	v1.POST("/bulk", handler.Bulk)
	v1.GET("/report", handler.Report)
}

func SetAdminRoutes(api *echo.Group, handler *rest.AdminHandler) {
	admin := api.Group("/admin")
	admin.GET("/models", handler.ListModels)
	admin.GET("/models/current", handler.CurrentVersion)
}

func SetOpsRoutes(e *echo.Echo) {
	e.GET("/healthz", rest.Healthz)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
}
