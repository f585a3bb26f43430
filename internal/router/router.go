package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/byiitians/portal-api/internal/handler"
	"github.com/byiitians/portal-api/internal/middleware"
	"github.com/byiitians/portal-api/internal/service"
	"github.com/byiitians/portal-api/pkg/config"
	"github.com/byiitians/portal-api/pkg/logger"
	corsmiddleware "github.com/byiitians/portal-api/pkg/middleware/cors"
	reqidmiddleware "github.com/byiitians/portal-api/pkg/middleware/requestid"
)

// Deps bundles everything the route table needs.
type Deps struct {
	Config *config.Config
	Logger *zap.Logger

	AuthService    *service.AuthService
	MetricsService *service.MetricsService

	Auth          *handler.AuthHandler
	Sections      *handler.SectionHandler
	StudyMaterial *handler.StudyMaterialHandler
	Contents      *handler.ContentHandler
	Exports       *handler.ExportHandler
	Assets        *handler.AssetHandler
	Metrics       *handler.MetricsHandler
}

// New builds the gin engine with the full route surface.
func New(deps Deps) *gin.Engine {
	if deps.Config.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(deps.Logger))
	r.Use(corsmiddleware.New(deps.Config.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(deps.MetricsService))

	r.GET("/health", deps.Metrics.Health)
	r.GET("/ready", deps.Metrics.Health)
	r.GET("/metrics", deps.Metrics.Prometheus)

	if deps.Config.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(deps.Config.APIPrefix)

	api.GET("/sections", deps.Sections.List)
	api.GET("/sections/:id", deps.Sections.Get)
	api.GET("/sections/:id/contents", deps.Sections.Contents)

	study := api.Group("/study-material")
	study.GET("/:id", deps.StudyMaterial.Overview)
	study.GET("/:id/classes/:class", deps.StudyMaterial.ClassSubjects)
	study.GET("/:id/classes/:class/subjects/:subject", deps.StudyMaterial.ClassContents)
	study.GET("/:id/categories/:category", deps.StudyMaterial.CategoryOverview)
	study.GET("/:id/categories/:category/subjects/:subject", deps.StudyMaterial.CategorySubjectContents)
	study.GET("/:id/categories/:category/classes/:class", deps.StudyMaterial.CategoryClassSubjects)
	study.GET("/:id/categories/:category/classes/:class/subjects/:subject", deps.StudyMaterial.CategoryClassContents)

	api.GET("/assets/brochures/test-series", deps.Assets.TestSeriesBrochure)
	api.GET("/assets/download", deps.Assets.Download)

	auth := api.Group("/auth")
	auth.POST("/login", deps.Auth.Login)
	auth.POST("/refresh", deps.Auth.Refresh)
	auth.POST("/logout", middleware.JWT(deps.AuthService), deps.Auth.Logout)
	auth.GET("/me", middleware.JWT(deps.AuthService), deps.Auth.Me)

	admin := api.Group("/admin", middleware.JWT(deps.AuthService), middleware.RequireAdmin())
	admin.GET("/sections", deps.Sections.ListAll)
	admin.POST("/sections", deps.Sections.Create)
	admin.PUT("/sections/:id", deps.Sections.Update)
	admin.GET("/sections/:id/contents", deps.Contents.ListBySection)
	admin.POST("/contents", deps.Contents.Create)
	admin.DELETE("/contents/:id", deps.Contents.Delete)

	if deps.Config.Export.Enabled {
		admin.GET("/exports/contents", deps.Exports.ContentInventory)
	}

	return r
}
