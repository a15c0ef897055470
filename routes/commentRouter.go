package routes

import (
	"github.com/engrsakib/qa-with-go/controllers"
	"github.com/gin-gonic/gin"
)

func CommentRoutes(r *gin.Engine, h *controllers.Handler, auth gin.HandlerFunc) {
	commentGroup := r.Group("/comment")
	commentGroup.Use(auth)
	{
		commentGroup.POST("/addComment", h.AddComment)
	}
}
