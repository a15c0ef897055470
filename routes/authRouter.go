package routes

import (
	"github.com/engrsakib/qa-with-go/controllers"
	"github.com/gin-gonic/gin"
)

func LoginRoutes(r *gin.Engine, h *controllers.Handler) {
	loginGroup := r.Group("/login")
	{
		loginGroup.POST("/login", h.Login)
		loginGroup.POST("/createAccount", h.CreateAccount)
		loginGroup.POST("/refreshToken", h.RefreshToken)
	}
}

func UserRoutes(r *gin.Engine, h *controllers.Handler, auth, optionalAuth gin.HandlerFunc) {
	userGroup := r.Group("/user")
	{
		userGroup.GET("/getUser/:username", optionalAuth, h.GetUser)
		userGroup.POST("/updateSettings", auth, h.UpdateSettings)
	}
}
