package api

import (
	httpSwagger "github.com/swaggo/http-swagger"

	"permit-dashboard/internal/api/handler"
	"permit-dashboard/pkg/router"
)

func RegisterRoutes(r *router.Router) {
	r.POST("/api/v1/datasets", handler.CreateDataset)
	r.POST("/api/v1/datasets/load", handler.LoadDataset)
	r.GET("/api/v1/datasets", handler.ListDatasets)
	// More specific routes first
	r.GET("/api/v1/datasets/*/series/*", handler.GetDatasetSeries)
	r.GET("/api/v1/datasets/*/summary", handler.GetDatasetSummary)
	r.GET("/api/v1/datasets/*/metrics", handler.GetDatasetMetrics)
	r.GET("/api/v1/datasets/*/errors", handler.GetDatasetErrors)
	r.POST("/api/v1/datasets/*/recompute", handler.RecomputeDataset)
	r.GET("/api/v1/download/*", handler.DownloadFile)
	// Generic dataset routes last
	r.GET("/api/v1/datasets/*", handler.GetDataset)
	r.DELETE("/api/v1/datasets/*", handler.DeleteDataset)

	r.GET("/swagger/*", httpSwagger.WrapHandler.ServeHTTP)
}
