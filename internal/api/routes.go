package api

import "github.com/gin-gonic/gin"

func RegisterRoutes(r *gin.Engine, h *Handler) {
	r.Use(requestID())
	api := r.Group("/api")
	{
		api.GET("/health", health)
		api.GET("/render", h.renderURL)
		api.POST("/render", h.renderBody)
		api.GET("/parts/:part", h.part)
		api.GET("/palette", h.palette)
		api.GET("/qr", h.qr)
	}
}
