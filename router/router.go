package router

import (
	"CloudVault/internal/handler"
	"CloudVault/utils"

	"github.com/gin-gonic/gin"
)

// InitRouter builds API routes.
func InitRouter() *gin.Engine {
	r := gin.Default()
	r.Use(utils.CORSMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"ok": true})
	})

	api := r.Group("/api")
	{
		api.POST("/register", handler.Register)
		api.POST("/login", handler.Login)

		// Token-authorized routes: possession is the credential.
		api.GET("/share/:token", handler.ResolveShareLink)
		api.GET("/share/:token/download", handler.DownloadViaShareLink)
		api.GET("/files/download/:ticket", handler.DownloadWithTicket)

		auth := api.Group("")
		auth.Use(utils.AuthMiddleware())

		files := auth.Group("/files")
		{
			files.POST("/upload", handler.UploadFile)
			files.POST("/upload/bulk", handler.UploadBulk)
			files.GET("/mine", handler.ListMyFiles)
			files.GET("/shared-with-me", handler.ListSharedWithMe)

			files.GET("/:fileID", handler.GetFileMeta)
			files.GET("/:fileID/download", handler.DownloadFile)

			files.POST("/:fileID/share", handler.ShareWithUsers)
			files.DELETE("/:fileID/share", handler.RevokeShare)
			files.POST("/:fileID/share-link", handler.CreateShareLink)
			files.DELETE("/:fileID/share-link/:token", handler.RevokeShareLink)

			files.POST("/:fileID/download-ticket", handler.CreateDownloadTicket)
			files.GET("/:fileID/access-log", handler.GetFileAccessLogs)
		}
	}
	return r
}
