package api

import (
	"Moments/internal/api/middleware"
	"Moments/internal/pkg/logger"
	"net/http"

	"github.com/gin-gonic/gin"
)

func SetupRouter(group *HandlersGroup) *gin.Engine {
	r := gin.New()
	_ = r.SetTrustedProxies([]string{"localhost"})

	// TraceId & Logger & CORS
	r.Use(middleware.TraceMiddleware())
	r.Use(middleware.CORSMiddleware())
	logger.SetupGin(r)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"Code":    200,
			"Message": "pong",
			"Data":    nil,
		})
	})

	postGroup := r.Group("/posts")
	{
		authOptGroup := postGroup.Group("")
		authOptGroup.Use(middleware.AuthOptionalMiddleware())
		{
			authOptGroup.GET("", group.PostHandler.ListPosts)
			authOptGroup.GET("/:post_id", group.PostHandler.GetPost)
		}

		authGroup := postGroup.Group("")
		authGroup.Use(middleware.AuthMiddleware())
		{
			authGroup.POST("", group.PostHandler.CreatePost)
			authGroup.PUT("/:post_id", group.PostHandler.UpdatePost)
			authGroup.DELETE("/:post_id", group.PostHandler.DeletePost)
		}
	}

	tagGroup := r.Group("/tags")
	{
		tagGroup.GET("", group.TagHandler.ListTags)

		authGroup := tagGroup.Group("")
		authGroup.Use(middleware.AuthMiddleware())
		{
			authGroup.POST("", group.TagHandler.CreateTag)
		}
	}

	return r
}
