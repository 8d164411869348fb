package server

import (
	"github.com/osint-hub/backend/internal/server/middleware"
	"github.com/osint-hub/backend/internal/server/routes"

	"github.com/labstack/echo/v4"
)

func RegisterRoutes(e *echo.Echo, metrics *middleware.Collector) {
	// Health check route
	e.GET("/health", func(c echo.Context) error {
		return c.String(200, "OK")
	})
	if metrics != nil {
		e.GET("/metrics", echo.WrapHandler(metrics.Handler()))
	}

	apiRoutes := e.Group("/api", middleware.AuthMiddleware)

	// Entity routes
	apiRoutes.GET("/entities", routes.GetEntitiesHandler)
	apiRoutes.POST("/entities", routes.CreateEntityHandler)
	apiRoutes.GET("/entities/stats", routes.GetEntityStatsHandler)

	entityRoutes := apiRoutes.Group("/entities/:id", middleware.RequireEntityOwner)
	entityRoutes.GET("", routes.GetEntityHandler)
	entityRoutes.PATCH("", routes.UpdateEntityHandler)
	entityRoutes.DELETE("", routes.DeleteEntityHandler)
	entityRoutes.POST("/avatar", routes.UploadAvatarHandler)

	// Social account routes
	entityRoutes.GET("/social-accounts", routes.GetSocialAccountsHandler)
	entityRoutes.POST("/social-accounts", routes.CreateSocialAccountHandler)
	entityRoutes.PATCH("/social-accounts/:account_id", routes.UpdateSocialAccountHandler)
	entityRoutes.DELETE("/social-accounts/:account_id", routes.DeleteSocialAccountHandler)

	// Entity tag routes
	entityRoutes.GET("/tags", routes.GetEntityTagsHandler)
	entityRoutes.POST("/tags", routes.AttachTagHandler)
	entityRoutes.DELETE("/tags/:tag_id", routes.DetachTagHandler)

	// Image routes
	entityRoutes.GET("/images", routes.GetImagesHandler)
	entityRoutes.POST("/images", routes.CreateImageHandler)
	entityRoutes.PATCH("/images/:image_id", routes.UpdateImageHandler)
	entityRoutes.DELETE("/images/:image_id", routes.DeleteImageHandler)

	// Document routes
	entityRoutes.GET("/documents", routes.GetDocumentsHandler)
	entityRoutes.POST("/documents", routes.UploadDocumentHandler)
	entityRoutes.PATCH("/documents/:document_id", routes.UpdateDocumentHandler)
	entityRoutes.DELETE("/documents/:document_id", routes.DeleteDocumentHandler)
	entityRoutes.GET("/documents/:document_id/download", routes.GetDocumentDownloadHandler)

	// Tag routes
	apiRoutes.GET("/tags", routes.GetTagsHandler)
	apiRoutes.POST("/tags", routes.CreateTagHandler)
	apiRoutes.PATCH("/tags/:tag_id", routes.UpdateTagHandler)
	apiRoutes.DELETE("/tags/:tag_id", routes.DeleteTagHandler)

	// Graph routes
	apiRoutes.GET("/graph", routes.GetGraphHandler)
	apiRoutes.GET("/graph/snapshot.png", routes.GetGraphSnapshotHandler)
	apiRoutes.POST("/graph/connections", routes.ProposeConnectionHandler)
	apiRoutes.GET("/graph/positions", routes.GetPositionsHandler)
	apiRoutes.PUT("/graph/positions", routes.PutPositionsHandler)

	// Relationship routes
	apiRoutes.GET("/relationships", routes.GetRelationshipsHandler)
	apiRoutes.POST("/relationships", routes.CreateRelationshipHandler)
	apiRoutes.DELETE("/relationships/:id", routes.DeleteRelationshipHandler)

	// Export routes
	apiRoutes.GET("/export/json", routes.ExportJSONHandler)
	apiRoutes.GET("/export/xlsx", routes.ExportXLSXHandler)
}
