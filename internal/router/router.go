package router

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/js051/Course-Management/internal/config"
	"github.com/js051/Course-Management/internal/etl"
	"github.com/js051/Course-Management/internal/handler"
	"github.com/js051/Course-Management/internal/web"
)

func Setup(db *gorm.DB, pipeline *etl.Pipeline, cfg *config.Config) *gin.Engine {
	r := gin.Default()

	// 中間件
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(corsMiddleware())

	// 健康檢查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": "course-management",
		})
	})

	// CRUD API，整組路由都要 API Key
	memberHandler := handler.NewMemberHandler(db)
	members := r.Group("/members")
	members.Use(handler.APIKeyAuth(cfg.API.Key))
	{
		members.POST("", memberHandler.CreateMember)
		members.GET("", memberHandler.GetMembers)
	}

	// 瀏覽器操作介面（內網工具，不走 API Key）
	webHandler := web.NewHandler(db, pipeline, cfg.ETL.MembersExportPath)
	webHandler.Register(r)

	return r
}

// CORS中間件
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Content-Length, Accept-Encoding, X-API-Key")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
