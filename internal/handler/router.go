package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/noah-isme/student-roster/internal/middleware"
)

// RegisterRoutes mounts the roster and observability endpoints. The legacy paths "/" and
// "/create" stay available next to their "/students" equivalents.
func RegisterRoutes(r gin.IRouter, students *StudentHandler, metrics *MetricsHandler) {
	r.GET("/health", metrics.Health)
	r.GET("/ready", metrics.Ready)
	r.GET("/metrics", metrics.Prometheus)
	r.GET("/metrics/summary", metrics.Summary)
	r.GET("/catalog", students.Catalog)

	group := r.Group("/students")
	group.GET("", students.List)
	group.POST("", students.Create)
	group.GET("/export", students.Export)

	legacy := middleware.LegacyAlias(group.BasePath())
	r.GET("/", legacy, students.List)
	r.POST("/create", legacy, students.Create)
}
