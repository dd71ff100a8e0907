package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	castmemberHandler "videocatalog-backend/internal/domains/castmember/handler"
	categoryHandler "videocatalog-backend/internal/domains/category/handler"
	genreHandler "videocatalog-backend/internal/domains/genre/handler"
	videoHandler "videocatalog-backend/internal/domains/video/handler"
	"videocatalog-backend/internal/shared/middleware"
	"videocatalog-backend/pkg/container"
)

func setupRouter(c *container.Container) *gin.Engine {
	if c.Config.App.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	router.Use(middleware.RequestID())
	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())
	router.Use(middleware.CORS())

	router.MaxMultipartMemory = 32 << 20

	router.GET("/health", func(ctx *gin.Context) {
		status := http.StatusOK
		checks := gin.H{"database": "ok", "cache": "ok"}

		if err := c.DB.HealthCheck(ctx.Request.Context()); err != nil {
			status = http.StatusServiceUnavailable
			checks["database"] = err.Error()
		}
		if err := c.Cache.Ping(ctx.Request.Context()); err != nil {
			status = http.StatusServiceUnavailable
			checks["cache"] = err.Error()
		}

		ctx.JSON(status, gin.H{
			"status":  http.StatusText(status),
			"version": c.Config.App.Version,
			"checks":  checks,
		})
	})

	v1 := router.Group("/api/v1")

	categories := categoryHandler.NewCategoryHandler(c.CategoryService)
	categoryRoutes := v1.Group("/categories")
	{
		categoryRoutes.GET("", categories.Index)
		categoryRoutes.POST("", categories.Create)
		categoryRoutes.DELETE("", categories.DestroyCollection)
		categoryRoutes.GET("/:id", categories.Show)
		categoryRoutes.PUT("/:id", categories.Update)
		categoryRoutes.DELETE("/:id", categories.Destroy)
		categoryRoutes.POST("/:id/restore", categories.Restore)
	}

	genres := genreHandler.NewGenreHandler(c.GenreService)
	genreRoutes := v1.Group("/genres")
	{
		genreRoutes.GET("", genres.Index)
		genreRoutes.POST("", genres.Create)
		genreRoutes.DELETE("", genres.DestroyCollection)
		genreRoutes.GET("/:id", genres.Show)
		genreRoutes.PUT("/:id", genres.Update)
		genreRoutes.DELETE("/:id", genres.Destroy)
		genreRoutes.POST("/:id/restore", genres.Restore)
	}

	castMembers := castmemberHandler.NewCastMemberHandler(c.CastMemberService)
	castMemberRoutes := v1.Group("/cast-members")
	{
		castMemberRoutes.GET("", castMembers.Index)
		castMemberRoutes.POST("", castMembers.Create)
		castMemberRoutes.DELETE("", castMembers.DestroyCollection)
		castMemberRoutes.GET("/:id", castMembers.Show)
		castMemberRoutes.PUT("/:id", castMembers.Update)
		castMemberRoutes.DELETE("/:id", castMembers.Destroy)
		castMemberRoutes.POST("/:id/restore", castMembers.Restore)
	}

	videos := videoHandler.NewVideoHandler(c.VideoService)
	videoRoutes := v1.Group("/videos")
	{
		videoRoutes.GET("", videos.Index)
		videoRoutes.POST("", videos.Create)
		videoRoutes.DELETE("", videos.DestroyCollection)
		videoRoutes.GET("/:id", videos.Show)
		videoRoutes.PUT("/:id", videos.Update)
		videoRoutes.DELETE("/:id", videos.Destroy)
		videoRoutes.POST("/:id/restore", videos.Restore)
	}

	return router
}
