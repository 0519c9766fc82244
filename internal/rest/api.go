package rest

import "github.com/gin-gonic/gin"

func NewApi(router *gin.Engine, images *ImageHandler) {
	router.POST("/upload", images.Upload)
	router.GET("/images-list", images.List)
	router.DELETE("/delete/:id", images.Delete)
	router.GET("/images/:filename", images.Serve)
}
